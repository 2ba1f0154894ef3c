package model

// Record — запись кредитного профиля в виде, готовом к отображению.
// DecryptedValue имеет смысл только при IsVerified == true.
type Record struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Timestamp      int64  `json:"timestamp"` // unix seconds, время блока создания
	Creator        string `json:"creator"`
	PublicValue1   uint32 `json:"public_value1"` // уровень финансовой активности (1-10)
	PublicValue2   uint32 `json:"public_value2"` // зарезервировано, при создании всегда 0
	IsVerified     bool   `json:"is_verified"`
	DecryptedValue uint32 `json:"decrypted_value,omitempty"`
}

// ShortCreator returns the creator address shortened to 0x1234...abcd form.
func (r Record) ShortCreator() string {
	if len(r.Creator) < 42 {
		return r.Creator
	}
	return r.Creator[:6] + "..." + r.Creator[38:]
}
