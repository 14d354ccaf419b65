package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classeval/collection-api/internal/collection/application"
)

// RowStore implements application.RowStore using MongoDB.
// 論理テーブル1つをコレクション1つに対応させ、各行を RowDocument として保持する。
type RowStore struct {
	database *mongo.Database
	tables   []string
}

// NewRowStore creates a Mongo-backed row store. tables は Stats が報告する対象。
func NewRowStore(db *mongo.Database, tables ...string) *RowStore {
	return &RowStore{database: db, tables: tables}
}

// Scan はテーブル全行を行番号順に返す。先頭はヘッダー行。
func (r *RowStore) Scan(ctx context.Context, table string) ([][]string, error) {
	collection := r.database.Collection(table)

	opts := options.Find().SetSort(bson.D{{Key: "row", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([][]string, 0)
	for cursor.Next(ctx) {
		var doc RowDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rows = append(rows, doc.Cells)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", application.ErrTableNotFound, table)
	}
	return rows, nil
}

// Append は末尾に1行追記し、採番した行番号(ヘッダー=1 の通し番号)を返す。
// 同時追記時の採番は保証しない。
func (r *RowStore) Append(ctx context.Context, table string, row []string) (int, error) {
	collection := r.database.Collection(table)

	last, err := r.lastRowNumber(ctx, collection)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: %s", application.ErrTableNotFound, table)
		}
		return 0, err
	}

	next := last + 1
	doc := RowDocument{ID: primitive.NewObjectID(), Row: next, Cells: row}
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return 0, err
	}
	return next, nil
}

// ReplaceBody はヘッダーを残して本体行を全削除し、渡された行を2行目から詰め直す。
// 削除と挿入はトランザクションで括っていないため、挿入失敗時は本体が空になる。
func (r *RowStore) ReplaceBody(ctx context.Context, table string, rows [][]string) error {
	collection := r.database.Collection(table)

	if err := collection.FindOne(ctx, bson.M{"row": 1}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", application.ErrTableNotFound, table)
		}
		return err
	}

	if _, err := collection.DeleteMany(ctx, bson.M{"row": bson.M{"$gt": 1}}); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	docs := make([]any, 0, len(rows))
	for i, row := range rows {
		docs = append(docs, RowDocument{ID: primitive.NewObjectID(), Row: i + 2, Cells: row})
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}

// Stats は管理対象テーブルごとの本体行数(ヘッダー除く)を返す。
func (r *RowStore) Stats(ctx context.Context) ([]application.TableStats, error) {
	stats := make([]application.TableStats, 0, len(r.tables))
	for _, table := range r.tables {
		count, err := r.database.Collection(table).CountDocuments(ctx, bson.M{"row": bson.M{"$gt": 1}})
		if err != nil {
			return nil, err
		}
		stats = append(stats, application.TableStats{Table: table, Rows: int(count)})
	}
	return stats, nil
}

// EnsureTable はヘッダー行が無ければ作成する。起動時と seed から呼ぶ。
func (r *RowStore) EnsureTable(ctx context.Context, table string, header []string) error {
	collection := r.database.Collection(table)

	count, err := collection.CountDocuments(ctx, bson.M{"row": 1})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	doc := RowDocument{ID: primitive.NewObjectID(), Row: 1, Cells: header}
	_, err = collection.InsertOne(ctx, doc)
	return err
}

func (r *RowStore) lastRowNumber(ctx context.Context, collection *mongo.Collection) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "row", Value: -1}})
	var doc RowDocument
	if err := collection.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Row, nil
}
