package core

import (
	"context"

	"github.com/addisware/addispos/internal/model"
)

// appendAudit returns the encoded logs collection with a new entry
// appended and the oldest entries evicted past the cap. The caller
// includes the blob in the same WriteMany as the mutation it records,
// so the audit trail can never disagree with the state it describes.
func (c *Core) appendAudit(ctx context.Context, actor, action, detail string) ([]byte, error) {
	logs, err := readList[model.AuditEntry](ctx, c, colLogs)
	if err != nil {
		return nil, err
	}

	logs = append(logs, model.AuditEntry{
		ID:     c.ids.NewID(),
		Seq:    c.clock.Next(),
		Actor:  actor,
		Action: action,
		Detail: detail,
		At:     c.now(),
	})
	if n := len(logs) - c.auditCap; n > 0 {
		logs = logs[n:]
	}

	return encode(colLogs, logs)
}

// AuditLog returns the audit trail, newest first.
func (c *Core) AuditLog(ctx context.Context) ([]model.AuditEntry, error) {
	logs, err := readList[model.AuditEntry](ctx, c, colLogs)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}
