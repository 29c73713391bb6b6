package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/placementos/placementos/internal/bootstrap"
	"github.com/placementos/placementos/internal/eventbus"
	"github.com/placementos/placementos/internal/pkg/buildinfo"
	"github.com/placementos/placementos/internal/schema"
	"github.com/placementos/placementos/internal/service"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

type apiServer struct {
	core *bootstrap.Core
}

func newAPI(core *bootstrap.Core) *apiServer {
	return &apiServer{core: core}
}

// ========== DTOs（与前端契约保持稳定） ==========

type LogActivityRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

type CreateApplicationRequest struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Salary   string `json:"salary"`
	Notes    string `json:"notes"`
}

type UpdateApplicationRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Salary string `json:"salary"`
	Notes  string `json:"notes"`
}

type CreateInterviewRequest struct {
	Title    string               `json:"title"`
	Type     string               `json:"type"`
	Messages []schema.ChatMessage `json:"messages"`
}

type UpdateInterviewMessagesRequest struct {
	ID       int64                `json:"id"`
	Messages []schema.ChatMessage `json:"messages"`
}

type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type UpdateDocumentRequest struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SaveResumeRequest struct {
	Content string `json:"content"`
}

type CreateDeckRequest struct {
	Title string `json:"title"`
}

type CreateCardRequest struct {
	DeckID int64  `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

type CreateEventRequest struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Notes string    `json:"notes"`
}

type CreateSnippetRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
	Notes    string `json:"notes"`
}

type UpdateSnippetRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
	Notes string `json:"notes"`
}

type CreateExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

type CreateRoadmapRequest struct {
	Title string               `json:"title"`
	Steps []schema.RoadmapStep `json:"steps"`
}

type UpdateRoadmapStepsRequest struct {
	ID    int64                `json:"id"`
	Steps []schema.RoadmapStep `json:"steps"`
}

type SaveProfileRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	TargetRole           string `json:"target_role"`
	GraduationYear       string `json:"graduation_year"`
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

type KnowledgeSearchDTO struct {
	Query   string                    `json:"query"`
	Results []service.KnowledgeResult `json:"results"`
}

// ========== 路由 ==========

func (a *apiServer) registerJSONRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats", a.wrapGET(a.getStats))

	mux.HandleFunc("/api/activities", a.wrapAny(a.activities))

	mux.HandleFunc("/api/applications", a.wrapAny(a.applications))
	mux.HandleFunc("/api/applications/update", a.wrapPOST(a.updateApplication))

	mux.HandleFunc("/api/interviews", a.wrapAny(a.interviews))
	mux.HandleFunc("/api/interviews/messages", a.wrapPOST(a.updateInterviewMessages))

	mux.HandleFunc("/api/documents", a.wrapAny(a.documents))
	mux.HandleFunc("/api/documents/update", a.wrapPOST(a.updateDocument))

	mux.HandleFunc("/api/resume", a.wrapAny(a.resume))

	mux.HandleFunc("/api/flashcards/decks", a.wrapAny(a.flashcardDecks))
	mux.HandleFunc("/api/flashcards/cards", a.wrapAny(a.flashcardCards))

	mux.HandleFunc("/api/calendar", a.wrapAny(a.calendarEvents))

	mux.HandleFunc("/api/snippets", a.wrapAny(a.snippets))
	mux.HandleFunc("/api/snippets/update", a.wrapPOST(a.updateSnippet))

	mux.HandleFunc("/api/expenses", a.wrapAny(a.expenses))

	mux.HandleFunc("/api/roadmaps", a.wrapAny(a.roadmaps))
	mux.HandleFunc("/api/roadmaps/steps", a.wrapPOST(a.updateRoadmapSteps))

	mux.HandleFunc("/api/profile", a.wrapAny(a.profile))

	mux.HandleFunc("/api/export", a.wrapGET(a.exportData))
	mux.HandleFunc("/api/import", a.wrapPOST(a.importData))

	mux.HandleFunc("/api/knowledge/search", a.wrapGET(a.knowledgeSearch))
}

func (a *apiServer) wrapGET(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

func (a *apiServer) wrapPOST(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

func (a *apiServer) wrapAny(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { fn(w, r) }
}

// userID 优先取 query 参数，缺省回落到本机配置的用户
func (a *apiServer) userID(r *http.Request) string {
	if uid := strings.TrimSpace(r.URL.Query().Get("user_id")); uid != "" {
		return uid
	}
	return a.core.Cfg.Server.UserID
}

// requireWritable 写接口统一的安全模式闸门
func (a *apiServer) requireWritable(w http.ResponseWriter) bool {
	if err := a.core.RequireHealthyDB(); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return false
	}
	return true
}

// logActivity 业务动作联动活动流水；失败只记日志，不影响主流程
func (a *apiServer) logActivity(ctx context.Context, userID, category, description string) {
	if _, err := a.core.Services.Activity.Log(ctx, userID, category, description); err != nil {
		slog.Warn("记录活动失败", "category", category, "error", err)
	}
}

func (a *apiServer) publishStatsUpdated(userID string) {
	a.core.Hub.Publish(eventbus.Event{Type: eventbus.EventStatsUpdated, UserID: userID})
}

// ========== handlers ==========

func (a *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   buildinfo.Version,
		"safe_mode": a.core.DB.SafeMode,
	})
}

func (a *apiServer) getStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	stats, err := a.core.Services.Stats.GetStats(ctx, a.userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *apiServer) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		limit := 20
		if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
			if n, err := parseInt64Param(s); err == nil && n > 0 {
				limit = int(n)
			}
		}

		items, err := a.core.Services.Activity.ListRecent(ctx, a.userID(r), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req LogActivityRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		userID := a.userID(r)
		activity, err := a.core.Services.Activity.Log(ctx, userID, req.Category, req.Description)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusCreated, activity)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) applications(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Application.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateApplicationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Company) == "" {
			writeError(w, http.StatusBadRequest, "company 不能为空")
			return
		}
		status := req.Status
		if status == "" {
			status = schema.ApplicationApplied
		}

		app := &schema.Application{
			UserID:   userID,
			Company:  req.Company,
			Position: req.Position,
			Status:   status,
			Salary:   req.Salary,
			Notes:    req.Notes,
		}
		if err := a.core.Repos.Application.Create(ctx, app); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		a.logActivity(ctx, userID, schema.ActivityApplication, "投递 "+req.Company)
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusCreated, app)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Application.Delete(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) updateApplication(w http.ResponseWriter, r *http.Request) {
	if !a.requireWritable(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	var req UpdateApplicationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id 参数无效")
		return
	}

	fields := map[string]any{}
	if req.Status != "" {
		if !schema.ValidApplicationStatus(req.Status) {
			writeError(w, http.StatusBadRequest, "未知投递状态: "+req.Status)
			return
		}
		fields["status"] = req.Status
	}
	if req.Salary != "" {
		fields["salary"] = req.Salary
	}
	if req.Notes != "" {
		fields["notes"] = req.Notes
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "没有可更新的字段")
		return
	}

	userID := a.userID(r)
	if err := a.core.Repos.Application.Update(ctx, userID, req.ID, fields); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.publishStatsUpdated(userID)
	writeJSON(w, http.StatusOK, map[string]any{"updated": req.ID})
}

func (a *apiServer) interviews(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Interview.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateInterviewRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title 不能为空")
			return
		}

		interview := &schema.Interview{
			UserID:   userID,
			Title:    req.Title,
			Type:     req.Type,
			Messages: schema.JSONMessages(req.Messages),
		}
		if err := a.core.Repos.Interview.Create(ctx, interview); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		a.logActivity(ctx, userID, schema.ActivityInterview, "模拟面试 "+req.Title)
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusCreated, interview)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) updateInterviewMessages(w http.ResponseWriter, r *http.Request) {
	if !a.requireWritable(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	var req UpdateInterviewMessagesRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id 参数无效")
		return
	}

	userID := a.userID(r)
	if err := a.core.Repos.Interview.UpdateMessages(ctx, userID, req.ID, schema.JSONMessages(req.Messages)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": req.ID})
}

func (a *apiServer) documents(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Document.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateDocumentRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title 不能为空")
			return
		}

		doc := &schema.Document{
			UserID:  userID,
			Title:   req.Title,
			Type:    req.Type,
			Content: req.Content,
		}
		if err := a.core.Repos.Document.Create(ctx, doc); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// 文档写入知识索引（未配置向量化时内部直接跳过）
		if a.core.Services.Knowledge != nil {
			if err := a.core.Services.Knowledge.IndexDocument(ctx, doc); err != nil {
				slog.Warn("文档写入知识索引失败", "doc_id", doc.ID, "error", err)
			}
		}
		writeJSON(w, http.StatusCreated, doc)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Document.Delete(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) updateDocument(w http.ResponseWriter, r *http.Request) {
	if !a.requireWritable(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	var req UpdateDocumentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id 参数无效")
		return
	}

	fields := map[string]any{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Content != "" {
		fields["content"] = req.Content
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "没有可更新的字段")
		return
	}

	if err := a.core.Repos.Document.Update(ctx, a.userID(r), req.ID, fields); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": req.ID})
}

func (a *apiServer) resume(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		resume, err := a.core.Repos.Resume.Get(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if resume == nil {
			resume = &schema.Resume{UserID: userID}
		}
		writeJSON(w, http.StatusOK, resume)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req SaveResumeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		resume := &schema.Resume{UserID: userID, Content: req.Content}
		if err := a.core.Repos.Resume.Save(ctx, resume); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusOK, resume)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) flashcardDecks(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Flashcard.ListDecks(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateDeckRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title 不能为空")
			return
		}

		deck := &schema.FlashcardDeck{UserID: userID, Title: req.Title}
		if err := a.core.Repos.Flashcard.CreateDeck(ctx, deck); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		a.logActivity(ctx, userID, schema.ActivityFlashcard, "创建卡组 "+req.Title)
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusCreated, deck)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Flashcard.DeleteDeck(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		a.publishStatsUpdated(userID)
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) flashcardCards(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		deckID, err := parseInt64Param(r.URL.Query().Get("deck_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "deck_id 参数无效")
			return
		}
		items, err := a.core.Repos.Flashcard.ListCards(ctx, deckID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateCardRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.DeckID <= 0 {
			writeError(w, http.StatusBadRequest, "deck_id 参数无效")
			return
		}

		card := &schema.Flashcard{DeckID: req.DeckID, Front: req.Front, Back: req.Back}
		if err := a.core.Repos.Flashcard.CreateCard(ctx, card); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		a.logActivity(ctx, userID, schema.ActivityFlashcard, "新增卡片")

		// 卡片写入知识索引（未配置向量化时内部直接跳过）
		if a.core.Services.Knowledge != nil {
			deck, err := a.core.Repos.Flashcard.GetDeck(ctx, userID, card.DeckID)
			if err == nil && deck != nil {
				if err := a.core.Services.Knowledge.IndexFlashcard(ctx, deck, card); err != nil {
					slog.Warn("卡片写入知识索引失败", "card_id", card.ID, "error", err)
				}
			}
		}
		writeJSON(w, http.StatusCreated, card)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		deckID, err := parseInt64Param(r.URL.Query().Get("deck_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "deck_id 参数无效")
			return
		}
		cardID, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Flashcard.DeleteCard(ctx, deckID, cardID); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": cardID})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) calendarEvents(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Event.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateEventRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title 不能为空")
			return
		}
		if req.Date.IsZero() {
			writeError(w, http.StatusBadRequest, "date 不能为空")
			return
		}

		event := &schema.Event{UserID: userID, Title: req.Title, Date: req.Date, Notes: req.Notes}
		if err := a.core.Repos.Event.Create(ctx, event); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, event)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Event.Delete(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) snippets(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Snippet.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateSnippetRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title 不能为空")
			return
		}

		snippet := &schema.CodeSnippet{
			UserID:   userID,
			Title:    req.Title,
			Language: req.Language,
			Code:     req.Code,
			Notes:    req.Notes,
		}
		if err := a.core.Repos.Snippet.Create(ctx, snippet); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		a.logActivity(ctx, userID, schema.ActivityCodeLab, "保存代码片段 "+req.Title)
		writeJSON(w, http.StatusCreated, snippet)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Snippet.Delete(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) updateSnippet(w http.ResponseWriter, r *http.Request) {
	if !a.requireWritable(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	var req UpdateSnippetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id 参数无效")
		return
	}

	fields := map[string]any{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Code != "" {
		fields["code"] = req.Code
	}
	if req.Notes != "" {
		fields["notes"] = req.Notes
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "没有可更新的字段")
		return
	}

	if err := a.core.Repos.Snippet.Update(ctx, a.userID(r), req.ID, fields); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": req.ID})
}

func (a *apiServer) expenses(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Expense.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateExpenseRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Description) == "" {
			writeError(w, http.StatusBadRequest, "description 不能为空")
			return
		}

		expense := &schema.Expense{
			UserID:      userID,
			Description: req.Description,
			Amount:      req.Amount,
			Category:    req.Category,
		}
		if err := a.core.Repos.Expense.Create(ctx, expense); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, expense)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Expense.Delete(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) roadmaps(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		items, err := a.core.Repos.Roadmap.List(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req CreateRoadmapRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title 不能为空")
			return
		}

		roadmap := &schema.Roadmap{
			UserID: userID,
			Title:  req.Title,
			Steps:  schema.JSONSteps(req.Steps),
		}
		if err := a.core.Repos.Roadmap.Create(ctx, roadmap); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		a.logActivity(ctx, userID, schema.ActivityRoadmap, "创建学习路线 "+req.Title)
		writeJSON(w, http.StatusCreated, roadmap)
	case http.MethodDelete:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		id, err := parseInt64Param(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id 参数无效")
			return
		}
		if err := a.core.Repos.Roadmap.Delete(ctx, userID, id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) updateRoadmapSteps(w http.ResponseWriter, r *http.Request) {
	if !a.requireWritable(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
	defer cancel()

	var req UpdateRoadmapStepsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id 参数无效")
		return
	}

	userID := a.userID(r)
	if err := a.core.Repos.Roadmap.UpdateSteps(ctx, userID, req.ID, schema.JSONSteps(req.Steps)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": req.ID})
}

func (a *apiServer) profile(w http.ResponseWriter, r *http.Request) {
	userID := a.userID(r)

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
		defer cancel()

		profile, err := a.core.Repos.Profile.Get(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if profile == nil {
			profile = &schema.Profile{UserID: userID, Theme: "dark"}
		}
		writeJSON(w, http.StatusOK, profile)
	case http.MethodPost:
		if !a.requireWritable(w) {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
		defer cancel()

		var req SaveProfileRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		profile := &schema.Profile{
			UserID:               userID,
			Name:                 req.Name,
			Email:                req.Email,
			TargetRole:           req.TargetRole,
			GraduationYear:       req.GraduationYear,
			Theme:                req.Theme,
			NotificationsEnabled: req.NotificationsEnabled,
		}
		if err := a.core.Repos.Profile.Save(ctx, profile); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) exportData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	data, err := a.core.Services.Export.Export(ctx, a.userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (a *apiServer) importData(w http.ResponseWriter, r *http.Request) {
	if !a.requireWritable(w) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	var data service.ExportData
	if err := readJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := a.userID(r)
	result, err := a.core.Services.Export.Import(ctx, userID, &data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.publishStatsUpdated(userID)
	writeJSON(w, http.StatusOK, result)
}

func (a *apiServer) knowledgeSearch(w http.ResponseWriter, r *http.Request) {
	if a.core.Services.Knowledge == nil {
		writeError(w, http.StatusBadRequest, "知识检索未启用，请配置向量化服务")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q 参数不能为空")
		return
	}
	topK := 5
	if s := strings.TrimSpace(r.URL.Query().Get("top_k")); s != "" {
		if n, err := parseInt64Param(s); err == nil && n > 0 {
			topK = int(n)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	results, err := a.core.Services.Knowledge.Search(ctx, query, topK)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &KnowledgeSearchDTO{Query: query, Results: results})
}
