package validator

import (
	"regexp"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

// フィールド単位の検証エラー。最初に失敗した項目だけ返す。
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// 10桁・先頭6〜9
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)

	// 6桁・先頭0は不可
	pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// チェックアウトフォームを検証する。部分送信はしない。
func (v *checkoutValidator) ValidateCheckout(form model.CheckoutForm) error {
	// 必須チェック（元UIの入力順）
	required := []struct {
		field string
		value string
	}{
		{"name", form.Name},
		{"email", form.Email},
		{"phone", form.Phone},
		{"address", form.Address},
		{"city", form.City},
		{"pincode", form.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &FieldError{Field: f.field, Message: "Please fill in " + f.field}
		}
	}

	// email形式
	if !emailRe.MatchString(form.Email) {
		return &FieldError{Field: "email", Message: "Please enter a valid email address"}
	}

	// 電話番号
	if !phoneRe.MatchString(form.Phone) {
		return &FieldError{Field: "phone", Message: "Please enter a valid 10-digit phone number"}
	}

	// pincode
	if !pincodeRe.MatchString(form.Pincode) {
		return &FieldError{Field: "pincode", Message: "Please enter a valid 6-digit pincode"}
	}

	return nil
}
