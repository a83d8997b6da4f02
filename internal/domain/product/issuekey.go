package product

import (
	"context"
	"fmt"
)

// IssueKind selects the sequence an issue key is drawn from.
type IssueKind string

const (
	IssueKindTicket  IssueKind = "B"
	IssueKindDevTask IssueKind = "T"
)

func (k IssueKind) IsValid() bool {
	return k == IssueKindTicket || k == IssueKindDevTask
}

// FormatIssueKey renders CRM-B001 style keys. Sequences past 999 widen.
func FormatIssueKey(code string, kind IssueKind, seq int64) string {
	return fmt.Sprintf("%s-%s%03d", code, kind, seq)
}

// IssueKeyAllocator hands out the next key for a product. Implementations
// must be safe under concurrent allocation for the same product.
type IssueKeyAllocator interface {
	Next(ctx context.Context, productID uint, kind IssueKind) (string, error)
}
