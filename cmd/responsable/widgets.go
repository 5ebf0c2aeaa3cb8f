package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/envelope"
	"github.com/xy-planning-network/responsable/http/middleware"
	"github.com/xy-planning-network/responsable/http/req"
	"github.com/xy-planning-network/responsable/http/resp"
	"github.com/xy-planning-network/responsable/http/router"
	"github.com/xy-planning-network/responsable/postgres"
	"github.com/xy-planning-network/responsable/ranger"
	"gorm.io/gorm"
)

// A Color is one of the finishes a Widget comes in.
type Color string

const (
	Blue  Color = "blue"
	Green Color = "green"
	Red   Color = "red"
)

var _ responsable.Enumerable = Red

func (c Color) String() string { return string(c) }

func (c Color) Valid() error {
	switch c {
	case Blue, Green, Red:
		return nil
	default:
		return responsable.ErrNotValid
	}
}

// A Widget is the demo resource.
type Widget struct {
	responsable.Model
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

var widgetMigrations = []postgres.Migration{
	{Key: "create_widgets", Executor: func(tx *gorm.DB) error { return tx.AutoMigrate(new(Widget)) }},
}

const invalidMsg = "The given data was invalid."

type widgetInput struct {
	Name  string `json:"name" schema:"name" validate:"required,max=255"`
	Color Color  `json:"color" schema:"color" validate:"required,enum"`
}

type pageInput struct {
	Page    int    `schema:"page" validate:"gte=0,max=1000000"`
	PerPage int    `schema:"per_page" validate:"gte=0,lte=100"`
	Cursor  string `schema:"cursor"`
}

type handler struct {
	*ranger.Ranger
	db     *gorm.DB
	parser *req.Parser
}

func newHandler(rng *ranger.Ranger) *handler {
	return &handler{Ranger: rng, db: rng.EmitDB(), parser: req.NewParser()}
}

func (h *handler) routes() []router.Route {
	return []router.Route{
		{Path: "/flash", Method: http.MethodGet, Handler: h.showFlash},
		{Path: "/flash", Method: http.MethodDelete, Handler: h.forgetFlash},
		{Path: "/widgets", Method: http.MethodGet, Handler: h.listWidgets},
		{Path: "/widgets/simple", Method: http.MethodGet, Handler: h.listWidgetsSimple},
		{Path: "/widgets/cursor", Method: http.MethodGet, Handler: h.listWidgetsCursor},
		{
			Path:        "/widgets",
			Method:      http.MethodPost,
			Handler:     h.createWidget,
			Middlewares: []middleware.Adapter{h.Idempotent()},
		},
		{Path: "/widgets/form", Method: http.MethodPost, Handler: h.submitWidget},
	}
}

// showFlash renders the state the previous request staged.
func (h *handler) showFlash(w http.ResponseWriter, r *http.Request) {
	st, err := h.State(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.Success(w, r, envelope.Data(st))
}

func (h *handler) forgetFlash(w http.ResponseWriter, r *http.Request) {
	if err := h.Forget(w, r); err != nil {
		h.Err(w, r, err)
		return
	}

	h.Success(w, r, envelope.Message("Flash state cleared."))
}

func (h *handler) listWidgets(w http.ResponseWriter, r *http.Request) {
	in, ok := h.pageParams(w, r)
	if !ok {
		return
	}

	widgets, p, err := postgres.Paginate[Widget](h.db.Order("id"), in.Page, in.PerPage)
	if errors.Is(err, postgres.ErrNotValid) {
		h.badPage(w, r)
		return
	}

	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.Success(w, r, envelope.Data(widgets), envelope.Paginate(p))
}

func (h *handler) listWidgetsSimple(w http.ResponseWriter, r *http.Request) {
	in, ok := h.pageParams(w, r)
	if !ok {
		return
	}

	widgets, p, err := postgres.SimplePaginate[Widget](h.db.Order("id"), in.Page, in.PerPage)
	if errors.Is(err, postgres.ErrNotValid) {
		h.badPage(w, r)
		return
	}

	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.Success(w, r, envelope.Data(widgets), envelope.Paginate(p))
}

func (h *handler) listWidgetsCursor(w http.ResponseWriter, r *http.Request) {
	in, ok := h.pageParams(w, r)
	if !ok {
		return
	}

	badCursor := func() {
		h.Error(w, r,
			envelope.Message(invalidMsg),
			envelope.Errors(map[string]any{"cursor": []string{"The cursor is invalid."}}),
		)
	}

	var cur *envelope.Cursor
	if in.Cursor != "" {
		var err error
		cur, err = envelope.DecodeCursor(in.Cursor)
		if err != nil {
			badCursor()
			return
		}
	}

	widgets, p, err := postgres.CursorPaginate[Widget](h.db, in.PerPage, cur)
	if errors.Is(err, postgres.ErrNotValid) {
		badCursor()
		return
	}

	if err != nil {
		h.Err(w, r, err)
		return
	}

	h.Success(w, r, envelope.Data(widgets), envelope.Paginate(p))
}

// createWidget answers the JSON API.
func (h *handler) createWidget(w http.ResponseWriter, r *http.Request) {
	in := new(widgetInput)
	err := h.parser.ParseBody(r.Body, in)
	if errs, ok := req.ErrorsFrom(err); ok {
		h.Error(w, r, envelope.Message(invalidMsg), envelope.Errors(errs))
		return
	}

	if err != nil {
		h.Error(w, r, envelope.Code(http.StatusBadRequest), envelope.Message("The request body is not valid JSON."))
		return
	}

	wd := &Widget{Name: in.Name, Color: in.Color}
	if err := h.db.Create(wd).Error; err != nil {
		h.Err(w, r, err)
		return
	}

	h.Success(w, r, envelope.Code(http.StatusCreated), envelope.Message("Widget created."), envelope.Data(wd))
}

// submitWidget answers an HTML form, redirecting with the outcome flashed into the session.
func (h *handler) submitWidget(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, resp.Failure("The form could not be read.", nil), resp.Code(http.StatusBadRequest))
		return
	}

	in := new(widgetInput)
	err := h.parser.ParseForm(r.PostForm, in)
	if errs, ok := req.ErrorsFrom(err); ok {
		h.Redirect(w, r, resp.Url("/widgets/new"), resp.Failure(invalidMsg, errs))
		return
	}

	if err != nil {
		h.Redirect(w, r, resp.Failure("The form could not be read.", nil), resp.Code(http.StatusBadRequest))
		return
	}

	wd := &Widget{Name: in.Name, Color: in.Color}
	if err := h.db.Create(wd).Error; err != nil {
		h.Redirect(w, r, resp.Failure("The widget could not be saved.", nil), resp.Code(http.StatusInternalServerError))
		return
	}

	h.Redirect(w, r,
		resp.Url("/widgets"),
		resp.Param("id", strconv.FormatUint(uint64(wd.ID), 10)),
		resp.Success("Widget created.", map[string]any{"id": wd.ID}),
	)
}

// pageParams reads the paging query parameters,
// responding with an error envelope when they are invalid.
func (h *handler) pageParams(w http.ResponseWriter, r *http.Request) (pageInput, bool) {
	var in pageInput
	err := h.parser.ParseQueryParams(r.URL.Query(), &in)
	if err == nil {
		return in, true
	}

	if errs, ok := req.ErrorsFrom(err); ok {
		h.Error(w, r, envelope.Message(invalidMsg), envelope.Errors(errs))
		return in, false
	}

	h.Err(w, r, err)
	return in, false
}

func (h *handler) badPage(w http.ResponseWriter, r *http.Request) {
	h.Error(w, r,
		envelope.Message(invalidMsg),
		envelope.Errors(map[string]any{"page": []string{"The page is out of range."}}),
	)
}
