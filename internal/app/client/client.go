package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"

	"history/internal/app/client/config"
	"history/internal/domain/record"
)

var ErrNotAuthenticated = errors.New("not logged in, run `history auth login`")

// App is what the CLI commands talk to: the REST client plus the
// persisted bearer token.
type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
	token  string
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config: cfg,
		log:    log,
		http:   NewHTTPClient(cfg, log),
	}

	token, err := app.loadToken()
	if err != nil {
		return nil, err
	}
	if token != "" {
		app.setToken(token)
		log.Debug("token loaded", "path", cfg.TokenPath)
	}

	return app, nil
}

func (a *App) setToken(token string) {
	a.token = token
	a.http.SetToken(token)
}

func (a *App) loadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsAuthenticated reports whether a token is stored. It does not ask the server.
func (a *App) IsAuthenticated() bool {
	return a.token != ""
}

// Login checks token against the server and stores it on success.
func (a *App) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token must not be empty")
	}

	previous := a.token
	a.setToken(token)
	if _, err := a.http.ListRecords(ctx, Page{Page: 1, Limit: 1}, ""); err != nil {
		a.setToken(previous)
		if IsUnauthorized(err) {
			return fmt.Errorf("token rejected by server: %w", err)
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(a.config.TokenPath), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(a.config.TokenPath, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	a.log.Info("logged in", "server", a.config.BaseURL())
	return nil
}

// Logout forgets the stored token. Logging out twice is not an error.
func (a *App) Logout() error {
	a.setToken("")
	if err := os.Remove(a.config.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (a *App) requireAuth() error {
	if !a.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (a *App) Health(ctx context.Context) (*Health, error) {
	return a.http.Health(ctx)
}

func (a *App) List(ctx context.Context, page Page, sort string) (*record.ListResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.ListRecords(ctx, page, sort)
}

func (a *App) Get(ctx context.Context, id int64) (*record.Item, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.GetRecord(ctx, id)
}

func (a *App) Create(ctx context.Context, req record.CreateRequest) (*record.Item, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.CreateRecord(ctx, req)
}

func (a *App) Import(ctx context.Context, reqs []record.CreateRequest) (*record.BulkCreateResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, errors.New("nothing to import")
	}
	return a.http.BulkCreate(ctx, reqs)
}

func (a *App) Update(ctx context.Context, id int64, req record.UpdateRequest) (*record.Item, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.UpdateRecord(ctx, id, req)
}

func (a *App) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.DeleteRecord(ctx, id)
}

func (a *App) Purge(ctx context.Context) (*DeleteAllResult, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.DeleteAll(ctx)
}

func (a *App) DateRange(ctx context.Context, start, end string, page Page) (*record.DateRangeResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.DateRange(ctx, start, end, page)
}

func (a *App) SearchTags(ctx context.Context, tags []string, matchAll bool, page Page) (*record.TagSearchResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.SearchTags(ctx, strings.Join(tags, ","), matchAll, page)
}

func (a *App) Search(ctx context.Context, keyword string, page Page) (*record.KeywordSearchResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.SearchKeyword(ctx, keyword, page)
}

func (a *App) Tags(ctx context.Context) (*record.TagsResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.Tags(ctx)
}

func (a *App) Stats(ctx context.Context, period string) (*record.StatsResponse, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	return a.http.Stats(ctx, period)
}
