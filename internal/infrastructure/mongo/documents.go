package mongo

import "go.mongodb.org/mongo-driver/bson/primitive"

// RowDocument は1テーブル内の1行を表す。row は 1 始まりで、row=1 がヘッダー。
type RowDocument struct {
	ID    primitive.ObjectID `bson:"_id"`
	Row   int                `bson:"row"`
	Cells []string           `bson:"cells"`
}
