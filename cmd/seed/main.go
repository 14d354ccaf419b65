package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classeval/collection-api/internal/collection/domain"
	"github.com/classeval/collection-api/internal/config"
	mongostore "github.com/classeval/collection-api/internal/infrastructure/mongo"
)

type seedOptions struct {
	envFile string
	drop    bool
}

// sampleSchedule はローカル開発用の講師スケジュール。
// center, week, day, period, instructor1, instructor2 の6列。
var sampleSchedule = [][]string{
	{"Centro Norte", "1", "Mon", "AM", "A. Sato", "M. Tanaka"},
	{"Centro Norte", "1", "Mon", "PM", "A. Sato", ""},
	{"Centro Norte", "1", "Tue", "AM", "K. Yamada", ""},
	{"Centro Norte", "2", "Mon", "AM", "M. Tanaka", "R. Suzuki"},
	{"Centro Sur", "1", "Mon", "AM", "R. Suzuki", ""},
	{"Centro Sur", "1", "Wed", "PM", "K. Yamada", "A. Sato"},
	{"Centro Sur", "2", "Fri", "AM", "", "M. Tanaka"},
}

func main() {
	opts := parseFlags()

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			log.Fatalf("環境ファイル %s の読み込みに失敗: %v", opts.envFile, err)
		}
	}

	cfg := config.Load()
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}()

	database := client.Database(cfg.MongoDatabase)
	if opts.drop {
		for _, table := range []string{cfg.InstructorsTable, cfg.EvaluationTable} {
			if err := database.Collection(table).Drop(ctx); err != nil {
				logger.Fatalf("テーブル %s の削除に失敗: %v", table, err)
			}
		}
		logger.Printf("既存テーブルを削除しました")
	}

	store := mongostore.NewRowStore(database, cfg.InstructorsTable, cfg.EvaluationTable)

	if err := store.EnsureTable(ctx, cfg.InstructorsTable, domain.InstructorsHeader); err != nil {
		logger.Fatalf("テーブル %s の作成に失敗: %v", cfg.InstructorsTable, err)
	}
	if err := store.EnsureTable(ctx, cfg.EvaluationTable, domain.EvaluationHeader); err != nil {
		logger.Fatalf("テーブル %s の作成に失敗: %v", cfg.EvaluationTable, err)
	}

	if err := store.ReplaceBody(ctx, cfg.InstructorsTable, sampleSchedule); err != nil {
		logger.Fatalf("サンプルスケジュールの投入に失敗: %v", err)
	}

	logger.Printf("seed 完了: %s に %d 行を投入しました", cfg.InstructorsTable, len(sampleSchedule))
}

func parseFlags() seedOptions {
	opts := seedOptions{}
	flag.StringVar(&opts.envFile, "env", "", "読み込む環境ファイルのパス (省略時は環境変数のみ)")
	flag.BoolVar(&opts.drop, "drop", false, "投入前に既存テーブルを削除する")
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}
	return opts
}
