package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eleven-am/taskboard/internal/store"
	"github.com/eleven-am/taskboard/internal/task"
)

func (s *Server) handleAddTaskForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	tags, err := s.dashboard.ForUser(r.Context(), user)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "task_form.html", M{
		"Tags":   tags.Tags,
		"IsEdit": false,
	})
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	form, err := parseTaskForm(r)
	if err != nil {
		s.renderTaskForm(w, r, form, map[string]string{"DueDate": err.Error()}, false, 0)
		return
	}
	if errs := validateForm(form); errs != nil {
		s.renderTaskForm(w, r, form, errs, false, 0)
		return
	}

	_, err = s.tasks.Create(r.Context(), user, task.Input{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     form.DueDate,
		TagName:     form.Tag,
	})
	if err != nil {
		if errors.Is(err, task.ErrUnknownTag) {
			s.renderTaskForm(w, r, form, map[string]string{"Tag": "Choose one of your boards."}, false, 0)
			return
		}
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleEditTaskForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	taskID, ok := s.pathID(w, r, "taskID")
	if !ok {
		return
	}

	existing, err := s.tasks.Get(r.Context(), user, taskID)
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	tag, err := s.tasks.TagOf(r.Context(), existing)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	form := taskForm{
		Title:       existing.Title,
		Description: existing.Description,
		DueDate:     existing.DueDate,
		Tag:         tag.Name,
	}
	s.renderTaskForm(w, r, form, nil, true, taskID)
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	taskID, ok := s.pathID(w, r, "taskID")
	if !ok {
		return
	}

	form, err := parseTaskForm(r)
	if err != nil {
		s.renderTaskForm(w, r, form, map[string]string{"DueDate": err.Error()}, true, taskID)
		return
	}
	if errs := validateForm(form); errs != nil {
		s.renderTaskForm(w, r, form, errs, true, taskID)
		return
	}

	_, err = s.tasks.Edit(r.Context(), user, taskID, task.Input{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     form.DueDate,
		TagName:     form.Tag,
	})
	if err != nil {
		if errors.Is(err, task.ErrUnknownTag) {
			s.renderTaskForm(w, r, form, map[string]string{"Tag": "Choose one of your boards."}, true, taskID)
			return
		}
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleToggleProgress(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	taskID, ok := s.pathID(w, r, "taskID")
	if !ok {
		return
	}

	if err := s.tasks.ToggleProgress(r.Context(), user, taskID); err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	taskID, ok := s.pathID(w, r, "taskID")
	if !ok {
		return
	}

	if err := s.tasks.Delete(r.Context(), user, taskID); err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/"+user.Username, http.StatusSeeOther)
}

// renderTaskForm re-renders the add/edit form with the user's boards as
// tag choices.
func (s *Server) renderTaskForm(w http.ResponseWriter, r *http.Request, form taskForm, errs map[string]string, isEdit bool, taskID int64) {
	user := currentUser(r)

	view, err := s.dashboard.ForUser(r.Context(), user)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	status := http.StatusOK
	if errs != nil {
		status = http.StatusUnprocessableEntity
	}

	s.render(w, r, status, "task_form.html", M{
		"Form":   form,
		"Errors": errs,
		"Tags":   view.Tags,
		"IsEdit": isEdit,
		"TaskID": taskID,
	})
}

// pathID parses a numeric id path parameter, rendering 404 on garbage
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		s.notFound(w, r)
		return 0, false
	}
	return id, true
}

// taskError maps task manager failures to responses
func (s *Server) taskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case store.IsNotFound(err):
		s.notFound(w, r)
	case errors.Is(err, task.ErrForbidden):
		s.forbidden(w, r)
	default:
		s.serverError(w, r, err)
	}
}
