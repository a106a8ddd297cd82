package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmsilva/teller/internal/batch"
	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/mirror"
	"github.com/jmsilva/teller/internal/teller"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger *slog.Logger
	svc    *teller.Service
	mirror *mirror.Mirror // nil when mirroring is disabled
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *teller.Service, m *mirror.Mirror) *APIHandlers {
	return &APIHandlers{
		logger: logger,
		svc:    svc,
		mirror: m,
	}
}

type openRequest struct {
	Type       string  `json:"type"`
	Branch     string  `json:"branch"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	DOB        string  `json:"dob"`
	Deposit    float64 `json:"deposit"`
	CampusCode string  `json:"campusCode,omitempty"`
	Term       int     `json:"term,omitempty"`
	OpenDate   string  `json:"openDate,omitempty"`
}

type accountResponse struct {
	Number  string  `json:"number"`
	Type    string  `json:"type"`
	Branch  string  `json:"branch"`
	Holder  string  `json:"holder"`
	Balance float64 `json:"balance"`
}

func (h *APIHandlers) openAccount(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	account, err := h.svc.Open(teller.OpenRequest{
		Type:       req.Type,
		Branch:     req.Branch,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		DOB:        req.DOB,
		Deposit:    req.Deposit,
		CampusCode: req.CampusCode,
		Term:       req.Term,
		OpenDate:   req.OpenDate,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.mirrorAccount(r, account)
	respondJSON(w, http.StatusCreated, toAccountResponse(account))
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *APIHandlers) deposit(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.Deposit(number, req.Amount); err != nil {
		h.writeDomainError(w, err)
		return
	}

	account := h.findAccount(number)
	if account != nil {
		h.mirrorAccount(r, account)
		h.mirrorLastActivity(r, account)
	}
	respondJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *APIHandlers) withdraw(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.svc.Withdraw(number, req.Amount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.mirrorAccount(r, result.Account)
	h.mirrorLastActivity(r, result.Account)

	respondJSON(w, http.StatusOK, struct {
		accountResponse
		BelowMinimum bool `json:"belowMinimum"`
	}{
		accountResponse: toAccountResponse(result.Account),
		BelowMinimum:    result.BelowMinimum,
	})
}

func (h *APIHandlers) closeAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	date := r.URL.Query().Get("date")
	if date == "" {
		date = domain.DateOf(time.Now()).String()
	}

	account, err := h.svc.CloseByNumber(number, date)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if h.mirror != nil {
		closedOn, _ := domain.ParseDate(date)
		if err := h.mirror.CloseAccount(r.Context(), account.Number(), closedOn); err != nil {
			h.logger.Warn("mirror close failed", "error", err, "number", number)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"closed": account.Number().String()})
}

type closeHolderRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"`
	Date      string `json:"date"`
}

func (h *APIHandlers) closeHolder(w http.ResponseWriter, r *http.Request) {
	var req closeHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Date == "" {
		req.Date = domain.DateOf(time.Now()).String()
	}

	closed, err := h.svc.CloseByHolder(req.FirstName, req.LastName, req.DOB, req.Date)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"closed": closed})
}

func (h *APIHandlers) report(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Store()

	var body string
	switch chi.URLParam(r, "kind") {
	case "branch":
		body = st.ReportByBranch()
	case "holder":
		body = st.ReportByHolder()
	case "type":
		body = st.ReportByType()
	case "statements":
		body = st.ReportStatements()
	case "archive":
		body = st.ReportArchive()
	default:
		writeError(w, http.StatusNotFound, "unknown report kind")
		return
	}

	respondText(w, http.StatusOK, body)
}

func (h *APIHandlers) snapshot(w http.ResponseWriter, r *http.Request) {
	respondText(w, http.StatusOK, h.svc.Store().Snapshot())
}

func (h *APIHandlers) loadAccounts(w http.ResponseWriter, r *http.Request) {
	lines, err := readLines(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	loaded := batch.LoadAccounts(h.svc.Store(), lines)
	h.mirrorStore(r)
	respondJSON(w, http.StatusOK, map[string]int{"loaded": loaded})
}

func (h *APIHandlers) processActivities(w http.ResponseWriter, r *http.Request) {
	lines, err := readLines(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "request"
	}

	messages := batch.ProcessActivities(h.svc.Store(), source, lines)
	h.mirrorStore(r)
	respondText(w, http.StatusOK, strings.Join(messages, "\n"))
}

func (h *APIHandlers) branchHolders(w http.ResponseWriter, r *http.Request) {
	if h.mirror == nil {
		writeError(w, http.StatusServiceUnavailable, "relationship mirror is not configured")
		return
	}

	branch, ok := domain.BranchByName(chi.URLParam(r, "branch"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown branch")
		return
	}

	holders, err := h.mirror.HoldersAtBranch(r.Context(), branch)
	if err != nil {
		h.logger.Error("branch holders query failed", "error", err, "branch", branch.String())
		writeError(w, http.StatusInternalServerError, "failed to query branch holders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"branch":  branch.String(),
		"holders": holders,
	})
}

func (h *APIHandlers) findAccount(numberText string) *domain.Account {
	number, err := domain.ParseAccountNumber(numberText)
	if err != nil {
		return nil
	}
	return h.svc.Store().FindByNumber(number)
}

func (h *APIHandlers) mirrorAccount(r *http.Request, account *domain.Account) {
	if h.mirror == nil || account == nil {
		return
	}
	if err := h.mirror.UpsertAccount(r.Context(), account); err != nil {
		h.logger.Warn("mirror upsert failed", "error", err, "number", account.Number().String())
	}
}

func (h *APIHandlers) mirrorLastActivity(r *http.Request, account *domain.Account) {
	if h.mirror == nil || account == nil {
		return
	}
	activities := account.Activities()
	if len(activities) == 0 {
		return
	}
	last := activities[len(activities)-1]
	if err := h.mirror.RecordActivity(r.Context(), account.Number(), last); err != nil {
		h.logger.Warn("mirror activity failed", "error", err, "number", account.Number().String())
	}
}

func (h *APIHandlers) mirrorStore(r *http.Request) {
	if h.mirror == nil {
		return
	}
	if err := h.mirror.ExportAccounts(r.Context(), h.svc.Store().Accounts()); err != nil {
		h.logger.Warn("mirror export failed", "error", err)
	}
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
func (h *APIHandlers) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toAccountResponse(account *domain.Account) accountResponse {
	if account == nil {
		return accountResponse{}
	}
	number := account.Number()
	return accountResponse{
		Number:  number.String(),
		Type:    number.Type.String(),
		Branch:  number.Branch.String(),
		Holder:  account.Holder().String(),
		Balance: account.Balance(),
	}
}

func readLines(body io.Reader) ([]string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
