package validator_test

import (
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() model.CheckoutForm {
	return model.CheckoutForm{
		Name:          "John Doe",
		Email:         "user@example.com",
		Phone:         "9876543210",
		Address:       "1 Marine Drive",
		City:          "Mumbai",
		Pincode:       "400001",
		PaymentMethod: "razorpay",
	}
}

func TestValidateCheckout_ValidFormPasses(t *testing.T) {
	v := validator.NewCheckoutValidator()
	assert.NoError(t, v.ValidateCheckout(validForm()))
}

func TestValidateCheckout_RequiredFields(t *testing.T) {
	v := validator.NewCheckoutValidator()

	tests := []struct {
		field  string
		mutate func(*model.CheckoutForm)
	}{
		{"name", func(f *model.CheckoutForm) { f.Name = "" }},
		{"email", func(f *model.CheckoutForm) { f.Email = "   " }},
		{"phone", func(f *model.CheckoutForm) { f.Phone = "" }},
		{"address", func(f *model.CheckoutForm) { f.Address = "" }},
		{"city", func(f *model.CheckoutForm) { f.City = "" }},
		{"pincode", func(f *model.CheckoutForm) { f.Pincode = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := v.ValidateCheckout(form)
			require.Error(t, err)
			assert.Equal(t, "Please fill in "+tt.field, err.Error())

			var fe *validator.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestValidateCheckout_Email(t *testing.T) {
	v := validator.NewCheckoutValidator()

	for _, bad := range []string{"bad-email", "a@b", "a b@c.com", "@c.com"} {
		form := validForm()
		form.Email = bad

		err := v.ValidateCheckout(form)
		require.Error(t, err, bad)
		assert.Equal(t, "Please enter a valid email address", err.Error())
	}

	form := validForm()
	form.Email = "first.last+tag@sub.example.co"
	assert.NoError(t, v.ValidateCheckout(form))
}

func TestValidateCheckout_Phone(t *testing.T) {
	v := validator.NewCheckoutValidator()

	//10桁・先頭6〜9のみ
	for _, bad := range []string{"12345", "5876543210", "98765432100", "98765abc10"} {
		form := validForm()
		form.Phone = bad

		err := v.ValidateCheckout(form)
		require.Error(t, err, bad)
		assert.Equal(t, "Please enter a valid 10-digit phone number", err.Error())
	}

	for _, good := range []string{"6000000000", "9876543210"} {
		form := validForm()
		form.Phone = good
		assert.NoError(t, v.ValidateCheckout(form), good)
	}
}

func TestValidateCheckout_Pincode(t *testing.T) {
	v := validator.NewCheckoutValidator()

	//6桁・先頭0は不可
	for _, bad := range []string{"000000", "12345", "1234567", "40000a"} {
		form := validForm()
		form.Pincode = bad

		err := v.ValidateCheckout(form)
		require.Error(t, err, bad)
		assert.Equal(t, "Please enter a valid 6-digit pincode", err.Error())
	}

	form := validForm()
	form.Pincode = "400001"
	assert.NoError(t, v.ValidateCheckout(form))
}

// 複数項目が同時に不正な場合は入力順で最初の1件だけ返す
func TestValidateCheckout_FirstFailureWins(t *testing.T) {
	v := validator.NewCheckoutValidator()

	form := validForm()
	form.Email = "bad"
	form.Phone = "bad"
	form.Pincode = "bad"

	err := v.ValidateCheckout(form)
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid email address", err.Error())
}
