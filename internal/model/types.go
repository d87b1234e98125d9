package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a list of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as [].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}
