package utils

import "testing"

type sampleForm struct {
	Name     string `validate:"required,nameok"`
	Email    string `validate:"required,emailok"`
	Username string `validate:"usernameok"`
	Password string `validate:"required,pwdmin"`
	Category string `validate:"category"`
}

func validForm() sampleForm {
	return sampleForm{
		Name:     "Alex Saunders",
		Email:    "alex@example.com",
		Username: "alex.s",
		Password: "secret1",
		Category: "Health",
	}
}

func TestValidateStructOK(t *testing.T) {
	f := validForm()
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	f := validForm()
	f.Name = ""
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestValidateStructEmail(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for bad email")
	}
}

func TestValidateStructPasswordTooShort(t *testing.T) {
	f := validForm()
	f.Password = "abc"
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestValidateStructCategory(t *testing.T) {
	f := validForm()
	f.Category = "Gardening"
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for unknown category")
	}
	f.Category = ""
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("empty optional category should pass, got %v", err)
	}
}
