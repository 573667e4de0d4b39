package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GenerationLogRepo interface {
	InsertLog(ctx context.Context, entry *GenerationLog) error
	ListLogs(ctx context.Context, projectID uint64, limit, offset int64) ([]*GenerationLog, error)
}

type generationLogRepoImpl struct {
	col *mongo.Collection
}

func NewGenerationLogRepo(db *mongo.Database) GenerationLogRepo {
	return &generationLogRepoImpl{
		col: db.Collection(GenerationLogCollection),
	}
}

func (s *generationLogRepoImpl) InsertLog(ctx context.Context, entry *GenerationLog) error {
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// ListLogs 分页获取项目的生成记录 (按时间倒序)
func (s *generationLogRepoImpl) ListLogs(ctx context.Context, projectID uint64, limit, offset int64) ([]*GenerationLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*GenerationLog, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
