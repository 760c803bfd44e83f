// Package server 实现仪表盘的 HTTP 层：整页渲染、列表局部刷新、
// JSON 接口以及"在外部程序中打开仓库"的动作接口。
// 这一层只做路由和渲染，扫描与缓存逻辑都在 repo 和 cache 包里。
package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git-local/internal/cache"
	"git-local/internal/config"
	"git-local/internal/repo"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Opener 在外部程序中打开一个目录。
type Opener interface {
	OpenEditor(path string) error
	OpenTerminal(path string) error
	OpenFiles(path string) error
}

type Server struct {
	cfg    config.Config
	cache  *cache.Cache
	opener Opener
	log    *slog.Logger
	tmpl   *template.Template
}

func New(cfg config.Config, c *cache.Cache, opener Opener, log *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		cfg:    cfg,
		cache:  c,
		opener: opener,
		log:    log,
		tmpl:   tmpl,
	}, nil
}

// Handler 返回完整的路由。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /partials/repos", s.handleRepoList)
	mux.HandleFunc("GET /api/repos", s.handleAPIRepos)
	mux.HandleFunc("POST /api/open/editor/{name}", s.handleOpen("editor"))
	mux.HandleFunc("POST /api/open/terminal/{name}", s.handleOpen("terminal"))
	mux.HandleFunc("POST /api/open/files/{name}", s.handleOpen("files"))
	return s.logRequests(mux)
}

func (s *Server) ListenAndServe() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	s.log.Info("listening", "addr", "http://"+addr, "base_path", s.cfg.BasePath)
	return http.ListenAndServe(addr, s.Handler())
}

// listData 是列表片段的模板数据，首页在其上追加标题。
type listData struct {
	Repos     []repo.Info
	RepoCount int
}

type indexData struct {
	Title string
	listData
}

// handleIndex 渲染整页，允许使用缓存内的快照。
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	repos, err := s.cache.Get(s.cfg.BasePath, false)
	if err != nil {
		s.scanError(w, err)
		return
	}

	data := indexData{
		Title:    s.cfg.Title,
		listData: listData{Repos: repos, RepoCount: len(repos)},
	}
	if err := s.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		s.log.Error("render index", "err", err)
	}
}

// handleRepoList 渲染列表片段，总是强制重新扫描（刷新按钮的目标）。
func (s *Server) handleRepoList(w http.ResponseWriter, r *http.Request) {
	repos, err := s.cache.Get(s.cfg.BasePath, true)
	if err != nil {
		s.scanError(w, err)
		return
	}

	data := listData{Repos: repos, RepoCount: len(repos)}
	if err := s.tmpl.ExecuteTemplate(w, "repo_list", data); err != nil {
		s.log.Error("render repo list", "err", err)
	}
}

// handleAPIRepos 以 JSON 返回仓库列表，?refresh=1 时绕过缓存。
func (s *Server) handleAPIRepos(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "1"
	repos, err := s.cache.Get(s.cfg.BasePath, force)
	if err != nil {
		s.scanError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(repos); err != nil {
		s.log.Error("encode repos", "err", err)
	}
}

// handleOpen 按仓库名在外部程序中打开仓库目录。
// 仓库名只允许是 base 目录的一级子目录名，拒绝路径穿越。
func (s *Server) handleOpen(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		path, err := s.resolveRepoPath(name)
		if err != nil {
			s.writeJSON(w, http.StatusNotFound, map[string]string{
				"status":  "error",
				"message": "Repository not found",
			})
			return
		}

		var openErr error
		switch kind {
		case "editor":
			openErr = s.opener.OpenEditor(path)
		case "terminal":
			openErr = s.opener.OpenTerminal(path)
		case "files":
			openErr = s.opener.OpenFiles(path)
		}
		if openErr != nil {
			s.log.Error("open repository", "kind", kind, "name", name, "err", openErr)
			s.writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": openErr.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// resolveRepoPath 把仓库名解析为 base 下的目录路径。
func (s *Server) resolveRepoPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid repository name %q", name)
	}

	path := filepath.Join(s.cfg.BasePath, name)
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", fmt.Errorf("not a directory: %s", path)
	}
	return path, nil
}

func (s *Server) scanError(w http.ResponseWriter, err error) {
	s.log.Error("scan base path", "base_path", s.cfg.BasePath, "err", err)
	http.Error(w, "scan failed: "+err.Error(), http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

// logRequests 记录每个请求的方法、路径和耗时。
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}
