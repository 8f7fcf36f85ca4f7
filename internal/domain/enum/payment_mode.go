package enum

import (
	"database/sql/driver"
	"fmt"
)

// PaymentMode represents the channel through which a bill was settled
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
)

// IsValid reports whether the mode is one of the known payment channels
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeCash || m == PaymentModeOnline
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(v)
	default:
		return fmt.Errorf("cannot scan payment mode from %T", value)
	}
	return nil
}
