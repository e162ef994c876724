package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// PasswordKind tags which variant a Password holds.
type PasswordKind int

const (
	PasswordMissing PasswordKind = iota
	PasswordNumber
	PasswordInteger
	PasswordText
	PasswordInvalid
)

func (k PasswordKind) String() string {
	switch k {
	case PasswordNumber:
		return "number"
	case PasswordInteger:
		return "integer"
	case PasswordText:
		return "text"
	case PasswordInvalid:
		return "invalid"
	default:
		return "missing"
	}
}

// Password is stored as supplied. It is a number, an integer or text; anything
// else decodes to PasswordInvalid and is rejected by validation.
type Password struct {
	kind    PasswordKind
	number  float64
	integer int64
	text    string
	raw     any
}

func NumberPassword(f float64) Password { return Password{kind: PasswordNumber, number: f} }
func IntegerPassword(i int64) Password  { return Password{kind: PasswordInteger, integer: i} }
func TextPassword(s string) Password    { return Password{kind: PasswordText, text: s} }

// PasswordFromValue converts a decoded value (JSON, BSON or Go literal) into a Password.
func PasswordFromValue(v any) Password {
	switch x := v.(type) {
	case nil:
		return Password{}
	case Password:
		return x
	case string:
		return TextPassword(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntegerPassword(i)
		}
		if f, err := x.Float64(); err == nil {
			return NumberPassword(f)
		}
		return Password{kind: PasswordInvalid, raw: x.String()}
	case int:
		return IntegerPassword(int64(x))
	case int32:
		return IntegerPassword(int64(x))
	case int64:
		return IntegerPassword(x)
	case float32:
		return NumberPassword(float64(x))
	case float64:
		return NumberPassword(x)
	default:
		return Password{kind: PasswordInvalid, raw: v}
	}
}

func (p Password) Kind() PasswordKind { return p.kind }

// Value returns the underlying Go value: float64, int64, string, the raw
// value for PasswordInvalid, or nil when missing.
func (p Password) Value() any {
	switch p.kind {
	case PasswordNumber:
		return p.number
	case PasswordInteger:
		return p.integer
	case PasswordText:
		return p.text
	case PasswordInvalid:
		return p.raw
	default:
		return nil
	}
}

func (p Password) String() string {
	switch p.kind {
	case PasswordNumber:
		return strconv.FormatFloat(p.number, 'f', -1, 64)
	case PasswordInteger:
		return strconv.FormatInt(p.integer, 10)
	case PasswordText:
		return p.text
	default:
		return ""
	}
}

func (p Password) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

func (p *Password) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*p = PasswordFromValue(v)
	return nil
}
