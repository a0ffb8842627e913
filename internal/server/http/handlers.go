package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/dmitrijs2005/notesapp/internal/server/models"
	"github.com/dmitrijs2005/notesapp/internal/server/services"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, username, password, fullname string) (string, error)
	GetUserByID(ctx context.Context, id string) (*models.UserProfile, error)
	SearchByUsername(ctx context.Context, fragment string) ([]models.UserProfile, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type NoteService interface {
	AddNote(ctx context.Context, n services.NewNote) (string, error)
	GetNotes(ctx context.Context, userID string) ([]*models.Note, error)
	GetNoteByID(ctx context.Context, noteID, userID string) (*models.Note, error)
	EditNoteByID(ctx context.Context, noteID, userID, title, body string, tags []string) error
	DeleteNoteByID(ctx context.Context, noteID, userID string) error
}

type CollaborationService interface {
	AddCollaboration(ctx context.Context, ownerID, noteID, collaboratorID string) (string, error)
	DeleteCollaboration(ctx context.Context, ownerID, noteID, collaboratorID string) error
}

type ExportService interface {
	RequestNotesExport(ctx context.Context, userID, targetEmail string) error
}

// Handlers groups the services behind the REST routes. Exports may be nil,
// in which case the export route is not mounted.
type Handlers struct {
	Users          UserService
	Auth           AuthService
	Notes          NoteService
	Collaborations CollaborationService
	Exports        ExportService
}

// decode binds the JSON body into dst.
func decode(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload", common.ErrorInvariant)
	}
	return nil
}

// requireFields takes name/value pairs and rejects the first blank value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorInvariant, pairs[i])
		}
	}
	return nil
}

// users

type postUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

func (h *Handlers) postUser(c echo.Context) error {
	var req postUserRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := requireFields(
		"username", req.Username,
		"password", req.Password,
		"fullname", req.Fullname,
	); err != nil {
		return err
	}

	id, err := h.Users.Register(c.Request().Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "User added", map[string]string{"userId": id})
}

func (h *Handlers) getUser(c echo.Context) error {
	u, err := h.Users.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", map[string]any{"user": u})
}

func (h *Handlers) searchUsers(c echo.Context) error {
	users, err := h.Users.SearchByUsername(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	if users == nil {
		users = []models.UserProfile{}
	}
	return success(c, http.StatusOK, "", map[string]any{"users": users})
}

// authentications

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handlers) postAuthentication(c echo.Context) error {
	var req loginRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := requireFields("username", req.Username, "password", req.Password); err != nil {
		return err
	}

	pair, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Authentication added", map[string]string{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handlers) refreshToken(c echo.Context) (string, error) {
	var req refreshTokenRequest
	if err := decode(c, &req); err != nil {
		return "", err
	}
	if err := requireFields("refreshToken", req.RefreshToken); err != nil {
		return "", err
	}
	return req.RefreshToken, nil
}

func (h *Handlers) putAuthentication(c echo.Context) error {
	token, err := h.refreshToken(c)
	if err != nil {
		return err
	}
	access, err := h.Auth.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Access token refreshed", map[string]string{"accessToken": access})
}

func (h *Handlers) deleteAuthentication(c echo.Context) error {
	token, err := h.refreshToken(c)
	if err != nil {
		return err
	}
	if err := h.Auth.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Refresh token deleted", nil)
}

// notes

type noteRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

func (h *Handlers) decodeNote(c echo.Context) (noteRequest, error) {
	var req noteRequest
	if err := decode(c, &req); err != nil {
		return req, err
	}
	if err := requireFields("title", req.Title); err != nil {
		return req, err
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	return req, nil
}

func (h *Handlers) postNote(c echo.Context) error {
	req, err := h.decodeNote(c)
	if err != nil {
		return err
	}
	id, err := h.Notes.AddNote(c.Request().Context(), services.NewNote{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
		Owner: userID(c),
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Note added", map[string]string{"noteId": id})
}

func (h *Handlers) getNotes(c echo.Context) error {
	notes, err := h.Notes.GetNotes(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return success(c, http.StatusOK, "", map[string]any{"notes": notes})
}

func (h *Handlers) getNote(c echo.Context) error {
	note, err := h.Notes.GetNoteByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "", map[string]any{"note": note})
}

func (h *Handlers) putNote(c echo.Context) error {
	req, err := h.decodeNote(c)
	if err != nil {
		return err
	}
	err = h.Notes.EditNoteByID(c.Request().Context(), c.Param("id"), userID(c), req.Title, req.Body, req.Tags)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Note updated", nil)
}

func (h *Handlers) deleteNote(c echo.Context) error {
	if err := h.Notes.DeleteNoteByID(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Note deleted", nil)
}

// collaborations

type collaborationRequest struct {
	NoteID string `json:"noteId"`
	UserID string `json:"userId"`
}

func (h *Handlers) decodeCollaboration(c echo.Context) (collaborationRequest, error) {
	var req collaborationRequest
	if err := decode(c, &req); err != nil {
		return req, err
	}
	return req, requireFields("noteId", req.NoteID, "userId", req.UserID)
}

func (h *Handlers) postCollaboration(c echo.Context) error {
	req, err := h.decodeCollaboration(c)
	if err != nil {
		return err
	}
	id, err := h.Collaborations.AddCollaboration(c.Request().Context(), userID(c), req.NoteID, req.UserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Collaboration added", map[string]string{"collaborationId": id})
}

func (h *Handlers) deleteCollaboration(c echo.Context) error {
	req, err := h.decodeCollaboration(c)
	if err != nil {
		return err
	}
	if err := h.Collaborations.DeleteCollaboration(c.Request().Context(), userID(c), req.NoteID, req.UserID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Collaboration deleted", nil)
}

// exports

type exportRequest struct {
	TargetEmail string `json:"targetEmail"`
}

func (h *Handlers) postNotesExport(c echo.Context) error {
	var req exportRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := requireFields("targetEmail", req.TargetEmail); err != nil {
		return err
	}
	if err := h.Exports.RequestNotesExport(c.Request().Context(), userID(c), req.TargetEmail); err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Your request is queued", nil)
}
