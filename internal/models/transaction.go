package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single bank transaction.
//
// The sign of the amount carries the direction: negative amounts are
// outflows, positive amounts are inflows.
type Transaction struct {
	DefaultModel
	Date     time.Time       // Time of day is currently only used for sorting and duplicate detection
	Payee    string          // The payee exactly as imported
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category string          // Name of a taxonomy category. Empty means uncategorized
	Tags     TagList         `gorm:"type:TEXT"`
	IsSaving bool            // Marks transfers into savings, set manually or by heuristic
	BankID   string          // Transaction ID issued by the bank. Not unique across re-imports
	Account  string          // Account name from the import, if the file carries one
	Note     string
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
//   - deduplicates tags
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Payee = strings.TrimSpace(t.Payee)
	t.Note = strings.TrimSpace(t.Note)
	t.BankID = strings.TrimSpace(t.BankID)
	t.Tags = t.Tags.dedupe()

	return nil
}

// TagList stores the tags of a transaction. Tags have set semantics for
// matching, but keep their insertion order for display.
type TagList []string

// Contains checks tag membership.
func (l TagList) Contains(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}

	return false
}

func (l TagList) dedupe() TagList {
	if l == nil {
		return nil
	}

	out := make(TagList, 0, len(l))
	for _, t := range l {
		t = strings.TrimSpace(t)
		if t == "" || out.Contains(t) {
			continue
		}
		out = append(out, t)
	}

	return out
}

// Scan implements the sql.Scanner interface.
func (l *TagList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}

	if raw == "" {
		*l = nil
		return nil
	}

	return json.Unmarshal([]byte(raw), l)
}

// Value implements the driver.Valuer interface.
func (l TagList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}
