package web

import (
	"errors"
	"net/http"

	"github.com/eleven-am/taskboard/internal/auth"
	"github.com/eleven-am/taskboard/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user := s.sessionUser(r)
	s.render(w, r, http.StatusOK, "index.html", M{"User": user})
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := parseLoginForm(r)
	if errs := validateForm(form); errs != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "login.html", M{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	user, err := s.auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownEmail):
			s.flash(r, "This email has not been registered yet, please register first.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		case errors.Is(err, auth.ErrInvalidCredential):
			s.flash(r, "Your password is incorrect. Please try again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			s.serverError(w, r, err)
		}
		return
	}

	if err := s.establishSession(r, user); err != nil {
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", nil)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := parseRegisterForm(r)
	if errs := validateForm(form); errs != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "register.html", M{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	user, err := s.auth.Register(r.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			s.flash(r, "This email has already been registered. Please sign in.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		s.serverError(w, r, err)
		return
	}

	if err := s.establishSession(r, user); err != nil {
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishSession rotates the session token and binds it to the user.
// Token rotation on privilege change blocks session fixation.
func (s *Server) establishSession(r *http.Request, user *models.User) error {
	if err := s.sessions.RenewToken(r.Context()); err != nil {
		return err
	}
	s.sessions.Put(r.Context(), sessionUserKey, user.ID)
	return nil
}

// sessionUser resolves the session to a user on public pages, where
// having no user is not an error.
func (s *Server) sessionUser(r *http.Request) *models.User {
	userID := s.sessions.GetInt64(r.Context(), sessionUserKey)
	if userID == 0 {
		return nil
	}
	user, err := s.auth.UserByID(r.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}
