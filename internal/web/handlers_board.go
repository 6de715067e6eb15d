package web

import (
	"errors"
	"net/http"

	"github.com/eleven-am/taskboard/internal/board"
)

func (s *Server) handleNewBoardForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "board_form.html", nil)
}

func (s *Server) handleNewBoard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	form := parseBoardForm(r)
	if errs := validateForm(form); errs != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "board_form.html", M{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	if _, err := s.boards.CreateOrSubscribe(r.Context(), user, form.Name); err != nil {
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	tagID, ok := s.pathID(w, r, "tagID")
	if !ok {
		return
	}

	if err := s.boards.Unsubscribe(r.Context(), user, tagID); err != nil {
		if errors.Is(err, board.ErrNotSubscribed) {
			s.notFound(w, r)
			return
		}
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	view, err := s.dashboard.ForUser(r.Context(), user)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	tagNames := make(map[int64]string, len(view.Tags))
	for _, tag := range view.Tags {
		tagNames[tag.ID] = tag.Name
	}

	s.render(w, r, http.StatusOK, "dashboard.html", M{
		"Tasks":    view.Tasks,
		"Tags":     view.Tags,
		"TagNames": tagNames,
	})
}
