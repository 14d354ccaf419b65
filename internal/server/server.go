package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/classeval/collection-api/internal/collection/application"
	"github.com/classeval/collection-api/internal/collection/domain"
	"github.com/classeval/collection-api/internal/config"
	mongostore "github.com/classeval/collection-api/internal/infrastructure/mongo"
	apihttp "github.com/classeval/collection-api/internal/interfaces/http/api"
)

// Server は HTTP サーバーのライフサイクルを管理し、各サービスをハンドラへ依存注入するコンポジションルート。
// ドメインロジックはここに書かず、配線とインフラ初期化のみを担う。
type Server struct {
	logger            *log.Logger
	client            *mongo.Client
	database          *mongo.Database
	rowStore          *mongostore.RowStore
	scheduleService   application.ScheduleService
	evaluationService application.EvaluationService
	statusService     application.StatusService
	location          *time.Location
	instructorsTable  string
	evaluationTable   string
	addr              string
	allowedOrigins    []string
}

// Run はHTTPサーバーを起動し、アクションエンドポイントやミドルウェアを組み立てる。
func (s *Server) Run() error {
	if err := s.ensureTables(context.Background()); err != nil {
		s.logger.Printf("テーブルヘッダーの用意に失敗しました: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	apiHandler := apihttp.NewHandler(apihttp.Config{
		Logger:      s.logger,
		Schedules:   s.scheduleService,
		Evaluations: s.evaluationService,
		Status:      s.statusService,
		Location:    s.location,
	})
	apiHandler.Register(router)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
// アクションの health とは別で、インフラ状態のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// ensureTables は両テーブルのヘッダー行がある状態を保証する。
// ローカル環境でも初回リクエストが TableNotFound にならないよう起動時に呼び出す。
func (s *Server) ensureTables(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.rowStore.EnsureTable(ctx, s.instructorsTable, domain.InstructorsHeader); err != nil {
		return err
	}
	return s.rowStore.EnsureTable(ctx, s.evaluationTable, domain.EvaluationHeader)
}

// writeJSON は JSON レスポンスの共通書き込み処理。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断し、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と Mongo クライアントを受け取り、サービスとハンドラを組み立てた Server を返す。
// 依存解決の起点となるファクトリとして機能する。
func New(cfg config.Config, client *mongo.Client) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
		cfg.ServerLog.Printf("タイムゾーン %s の読み込みに失敗: %v, JST を使用します", cfg.Timezone, err)
	}

	srv := &Server{
		logger:           cfg.ServerLog,
		client:           client,
		database:         client.Database(cfg.MongoDatabase),
		location:         loc,
		instructorsTable: cfg.InstructorsTable,
		evaluationTable:  cfg.EvaluationTable,
		addr:             cfg.Addr,
		allowedOrigins:   append([]string(nil), cfg.AllowedOrigins...),
	}

	srv.rowStore = mongostore.NewRowStore(srv.database, cfg.InstructorsTable, cfg.EvaluationTable)
	srv.scheduleService = application.NewScheduleService(srv.rowStore, cfg.InstructorsTable)
	srv.evaluationService = application.NewEvaluationService(srv.rowStore, cfg.EvaluationTable, loc)
	srv.statusService = application.NewStatusService(srv.rowStore)

	return srv
}
