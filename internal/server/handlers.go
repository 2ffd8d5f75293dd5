package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/internal/session"
	"github.com/grovetools/praise/pkg/presenter"
	"github.com/grovetools/praise/pkg/workers"
)

// sessionFor returns the caller's session, issuing a cookie for new ones.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		id = c.Value
	}
	sess, created := s.store.GetOrCreate(id)
	if created {
		http.SetCookie(w, s.cookie(sess.ID))
		s.logger.WithField("session", sess.ID).Debug("Session created")
	}
	return sess
}

func (s *Server) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// render enumerates workers and renders the session's view.
func (s *Server) render(sess *session.Session) (presenter.View, error) {
	list, err := s.source()
	if err != nil {
		return presenter.View{}, err
	}
	var v presenter.View
	_ = sess.Do(func(p *presenter.Presenter) error {
		v = p.Render(list)
		return nil
	})
	return v, nil
}

// apply runs one user event against the session and publishes the new view
// to its other pages. NO_WORKERS is not an error here: the view carries the
// notice.
func (s *Server) apply(sess *session.Session, source string, event func(*presenter.Presenter, []workers.Worker) error) (presenter.View, error) {
	list, err := s.source()
	if err != nil {
		return presenter.View{}, err
	}

	var v presenter.View
	err = sess.Do(func(p *presenter.Presenter) error {
		if err := event(p, list); err != nil && !errors.Is(err, errors.ErrCodeNoWorkers) {
			return err
		}
		v = p.Render(list)
		return nil
	})
	if err != nil {
		return presenter.View{}, err
	}

	if v.Last != nil {
		s.logger.WithFields(logrus.Fields{
			"session": sess.ID,
			"who":     v.Last.Who,
			"source":  source,
		}).Debug("Praised")
	}
	sess.Publish(session.Update{Type: session.UpdateView, Source: source, Payload: v})
	return v, nil
}

func clickEvent(k int) func(*presenter.Presenter, []workers.Worker) error {
	return func(p *presenter.Presenter, list []workers.Worker) error {
		return p.Click(list, k)
	}
}

func anotherEvent(p *presenter.Presenter, list []workers.Worker) error {
	return p.Another(list)
}

func parseIndex(raw string) (int, error) {
	k, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInvalidInput, "worker index must be an integer").
			WithDetail("index", raw)
	}
	return k, nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeImageMissing, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNoWorkers:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := s.logger.WithError(err).WithField("path", r.URL.Path)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	praiseErr, ok := errors.As(err)
	if !ok {
		praiseErr = errors.Wrap(err, errors.ErrCodeInternal, "internal error")
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, status, map[string]interface{}{"error": praiseErr})
		return
	}
	http.Error(w, praiseErr.Message, status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handlePage renders the HTML page for the caller's session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	v, err := s.render(sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := renderPage(&buf, s.opts.Title, v, s.opts.InlineImages); err != nil {
		s.writeError(w, r, errors.Wrap(err, errors.ErrCodeInternal, "failed to render page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// handleClick praises worker K and redirects back to the page.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	k, err := parseIndex(r.PathValue("index"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := s.sessionFor(w, r)
	if _, err := s.apply(sess, "http", clickEvent(k)); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAnother praises a random worker and redirects back to the page.
func (s *Server) handleAnother(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	if _, err := s.apply(sess, "http", anotherEvent); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleImage serves worker K's image re-encoded as PNG.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	raw, ok := strings.CutSuffix(file, ".png")
	if !ok {
		s.writeError(w, r, errors.ImageMissing(file))
		return
	}
	k, err := parseIndex(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.source()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if k < 0 || k >= len(list) {
		s.writeError(w, r, errors.ImageMissing(file).WithDetail("index", k))
		return
	}
	worker := list[k]
	if worker.Placeholder {
		http.Redirect(w, r, workers.PlaceholderURL, http.StatusFound)
		return
	}

	var buf bytes.Buffer
	if err := workers.EncodePNG(worker.Path, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// handleGetState returns the caller's session view as JSON.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	v, err := s.render(sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleAPIClick is the JSON variant of handleClick.
func (s *Server) handleAPIClick(w http.ResponseWriter, r *http.Request) {
	k, err := parseIndex(r.PathValue("index"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := s.sessionFor(w, r)
	v, err := s.apply(sess, "api", clickEvent(k))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleAPIAnother is the JSON variant of handleAnother.
func (s *Server) handleAPIAnother(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	v, err := s.apply(sess, "api", anotherEvent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
