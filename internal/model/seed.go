package model

import "fmt"

// SeedMenu returns the initial menu loaded on first run. Prices are in
// cents of birr.
func SeedMenu() []MenuItem {
	return []MenuItem{
		{ID: "m1", Name: "Ertb (Special)", Price: 35000, Category: "Main", Stock: 50,
			Description: "Our house special. A delightful mix of spicy stews and fresh injera."},
		{ID: "m2", Name: "Doro Wat", Price: 45000, Category: "Main", Stock: 20,
			Description: "Traditional chicken stew slowly simmered in a rich, spicy berbere sauce."},
		{ID: "m3", Name: "Special Kitfo", Price: 40000, Category: "Main", Stock: 30,
			Description: "Freshly minced beef, marinated in mitmita and niter kibbeh.",
			Modifiers: []ModifierGroup{{
				Name:     "Doneness",
				Required: true,
				Options: []ModifierOption{
					{Label: "Tire (raw)"},
					{Label: "Leb leb (rare)"},
					{Label: "Fully cooked"},
				},
			}}},
		{ID: "m4", Name: "Shekla Tibs", Price: 38000, Category: "Main", Stock: 40,
			Description: "Sizzling beef cubes served in a traditional clay pot."},
		{ID: "m5", Name: "Shiro Tegamino", Price: 18000, Category: "Vegan", Stock: 100,
			Description: "Smooth chickpea stew served bubbling hot in a clay pot."},
		{ID: "m6", Name: "Beyaynetu", Price: 20000, Category: "Vegan", Stock: 80,
			Description: "A colorful platter of various vegan stews, lentils, and vegetables."},
		{ID: "m7", Name: "Quanta Firfir", Price: 22000, Category: "Breakfast", Stock: 45,
			Available:   Hours{Start: 6, End: 11},
			Description: "Dried beef jerky cooked with injera in a spicy sauce."},
		{ID: "m8", Name: "Chechebsa", Price: 18000, Category: "Breakfast", Stock: 60,
			Available:   Hours{Start: 6, End: 11},
			Description: "Fried flatbread pieces tossed with spiced butter and berbere."},
		{ID: "m9", Name: "Ethiopian Coffee", Price: 5000, Category: "Drink", Stock: 200,
			Description: "Freshly roasted and brewed in a jebena."},
		{ID: "m10", Name: "Sprite", Price: 4000, Category: "Drink", Stock: 120},
	}
}

// SeedTables returns n dining tables named T1..Tn, all Available.
func SeedTables(n int) []Table {
	tables := make([]Table, 0, n)
	for i := 1; i <= n; i++ {
		tables = append(tables, Table{
			ID:     fmt.Sprintf("t%d", i),
			Name:   fmt.Sprintf("T%d", i),
			Status: TableAvailable,
		})
	}
	return tables
}

// SeedStaff returns the initial staff roster. PINs are hashed at seed
// time; the defaults are meant to be rotated by the admin on first use.
func SeedStaff() ([]Staff, error) {
	roster := []struct {
		id, name, pin string
		role          Role
		salary        Cents
	}{
		{"s1", "Abebe Kebede", "1234", RoleAdmin, 2500000},
		{"s2", "Tigist Alemu", "2345", RoleManager, 1800000},
		{"s3", "Dawit Haile", "3456", RoleWaiter, 900000},
		{"s4", "Sara Tesfaye", "4567", RoleWaiter, 900000},
		{"s5", "Yonas Girma", "5678", RoleKitchen, 1100000},
		{"s6", "Hana Bekele", "6789", RoleCashier, 1000000},
	}

	staff := make([]Staff, 0, len(roster))
	for _, r := range roster {
		hash, err := HashPIN(r.pin)
		if err != nil {
			return nil, fmt.Errorf("seed staff %s: %w", r.id, err)
		}
		staff = append(staff, Staff{
			ID:         r.id,
			Name:       r.name,
			PINHash:    hash,
			Role:       r.role,
			Active:     true,
			Salary:     r.salary,
			Attendance: []AttendanceRecord{},
			Reviews:    []ManagerReview{},
		})
	}
	return staff, nil
}

// SeedBranches returns the default branch table used when no config
// file provides one.
func SeedBranches() []Branch {
	return []Branch{
		{ID: "b1", Name: "Main Branch (Bole)", Location: "Bole", ServiceChargeRate: 0.10},
		{ID: "b2", Name: "Piassa Branch", Location: "Piassa", ServiceChargeRate: 0.05},
	}
}
