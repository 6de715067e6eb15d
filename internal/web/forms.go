package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const dueDateLayout = "2006-01-02"

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type taskForm struct {
	Title       string `validate:"required"`
	Description string
	DueDate     *time.Time
	Tag         string `validate:"required"`
}

type boardForm struct {
	Name string `validate:"required"`
}

func parseLoginForm(r *http.Request) loginForm {
	return loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}

func parseBoardForm(r *http.Request) boardForm {
	return boardForm{
		Name: r.PostFormValue("name"),
	}
}

func parseTaskForm(r *http.Request) (taskForm, error) {
	form := taskForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Tag:         r.PostFormValue("tag"),
	}

	if raw := r.PostFormValue("due_date"); raw != "" {
		due, err := time.Parse(dueDateLayout, raw)
		if err != nil {
			return form, errors.New("due date must be in YYYY-MM-DD format")
		}
		form.DueDate = &due
	}

	return form, nil
}

// validateForm runs struct validation and converts the failures into
// per-field messages suitable for rendering next to the inputs.
func validateForm(form interface{}) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}

	messages := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages[fe.Field()] = fieldMessage(fe)
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	default:
		return "Invalid value."
	}
}
