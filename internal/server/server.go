// Package server exposes the task store and the conversation agent over
// HTTP: a JSON REST surface for the task list, a chat endpoint, and a
// websocket that pushes task updates to every connected client.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"taskchat/internal/agent"
	"taskchat/internal/chatlog"
	"taskchat/internal/tasks"
)

type Server struct {
	store    tasks.Store
	agent    agent.Agent
	hub      *Hub
	recorder chatlog.Recorder
}

func New(store tasks.Store, ag agent.Agent, hub *Hub, recorder chatlog.Recorder) *Server {
	return &Server{store: store, agent: ag, hub: hub, recorder: recorder}
}

// Register wires all routes into mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("GET /api/tasks/filter/{status}", s.handleFilterByStatus)
	mux.HandleFunc("GET /api/tasks/priority/{priority}", s.handleFilterByPriority)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeDetail mirrors the {"detail": ...} error shape the frontend
// expects.
func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

// writeResultError maps a user-facing store error to a status code.
func writeResultError(w http.ResponseWriter, r tasks.Result) {
	if r.Err == "Task not found" {
		writeDetail(w, http.StatusNotFound, r.Err)
		return
	}
	writeDetail(w, http.StatusBadRequest, r.Err)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "AI Task Management API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "AI Task Management API is running",
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	result, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("list tasks: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, result.Tasks)
}

type taskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		writeDetail(w, http.StatusBadRequest, "Title is required")
		return
	}

	result, err := s.store.Create(r.Context(), tasks.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		log.Printf("create task: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if result.IsError() {
		writeResultError(w, result)
		return
	}

	s.hub.Broadcast(taskEvent{Type: "task_created", Task: result.Task})
	writeJSON(w, http.StatusOK, result.Task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid task id")
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err == tasks.ErrNotFound {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Printf("get task: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type taskUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid task id")
		return
	}
	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.store.Update(r.Context(), tasks.UpdateParams{
		TaskID:      id,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		log.Printf("update task: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if result.IsError() {
		writeResultError(w, result)
		return
	}

	s.hub.Broadcast(taskEvent{Type: "task_updated", Task: result.Task})
	writeJSON(w, http.StatusOK, result.Task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid task id")
		return
	}

	result, err := s.store.Delete(r.Context(), id, "")
	if err != nil {
		log.Printf("delete task: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if result.IsError() {
		writeResultError(w, result)
		return
	}

	s.hub.Broadcast(map[string]interface{}{"type": "task_deleted", "task_id": id})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (s *Server) handleFilterByStatus(w http.ResponseWriter, r *http.Request) {
	s.filterTasks(w, r, tasks.FilterParams{Status: r.PathValue("status")})
}

func (s *Server) handleFilterByPriority(w http.ResponseWriter, r *http.Request) {
	s.filterTasks(w, r, tasks.FilterParams{Priority: r.PathValue("priority")})
}

func (s *Server) filterTasks(w http.ResponseWriter, r *http.Request, p tasks.FilterParams) {
	result, err := s.store.Filter(r.Context(), p)
	if err != nil {
		log.Printf("filter tasks: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if result.IsError() {
		writeResultError(w, result)
		return
	}
	writeJSON(w, http.StatusOK, result.Tasks)
}

type chatHTTPRequest struct {
	Message string `json:"message"`
}

// handleChat serves chat for non-websocket clients. Each request starts a
// fresh conversation, matching the websocket-less fallback the frontend
// uses.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, hist, err := s.agent.Process(r.Context(), req.Message, nil)
	if err != nil {
		log.Printf("chat: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.record(r.Context(), req.Message, reply)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response":             reply,
		"conversation_history": hist,
	})
}
