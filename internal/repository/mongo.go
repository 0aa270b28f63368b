package repository

import (
	"context"
	"errors"
	"time"

	"learnloop-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ========== LECTURE REPOSITORY ==========

type lectureRepo struct {
	db *mongo.Database
}

func NewLectureRepository(db *mongo.Database) domain.LectureRepository {
	return &lectureRepo{db}
}

func (r *lectureRepo) collection() *mongo.Collection {
	return r.db.Collection("lectures")
}

// Create assigns the next position within the course before inserting.
// Positions only grow; deleting a lecture leaves a gap rather than
// renumbering, so the relative order of survivors never changes.
func (r *lectureRepo) Create(ctx context.Context, lecture *domain.Lecture) error {
	var last domain.Lecture
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	err := r.collection().FindOne(ctx, bson.M{"course_id": lecture.CourseID}, opts).Decode(&last)
	switch {
	case err == nil:
		lecture.Position = last.Position + 1
	case errors.Is(err, mongo.ErrNoDocuments):
		lecture.Position = 0
	default:
		return err
	}

	lecture.ID = primitive.NewObjectID()
	lecture.CreatedAt = time.Now()

	_, err = r.collection().InsertOne(ctx, lecture)
	return err
}

func (r *lectureRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lecture, error) {
	var lecture domain.Lecture
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&lecture)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepo) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Lecture, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lectures []domain.Lecture
	if err := cursor.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

func (r *lectureRepo) CountByCourseID(ctx context.Context, courseID uint) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"course_id": courseID})
}

func (r *lectureRepo) Update(ctx context.Context, lecture *domain.Lecture) error {
	update := bson.M{"$set": bson.M{
		"title":     lecture.Title,
		"content":   lecture.Content,
		"questions": lecture.Questions,
	}}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": lecture.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lectureRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lectureRepo) DeleteByCourseID(ctx context.Context, courseID uint) error {
	_, err := r.collection().DeleteMany(ctx, bson.M{"course_id": courseID})
	return err
}

// ========== PROGRESS REPOSITORY ==========

type progressRepo struct {
	db *mongo.Database
}

func NewProgressRepository(db *mongo.Database) domain.ProgressRepository {
	return &progressRepo{db}
}

func (r *progressRepo) collection() *mongo.Collection {
	return r.db.Collection("progress")
}

func (r *progressRepo) Get(ctx context.Context, studentID, courseID uint) (*domain.Progress, error) {
	var progress domain.Progress
	filter := bson.M{"student_id": studentID, "course_id": courseID}
	err := r.collection().FindOne(ctx, filter).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// upsert applies update to the student's progress document, creating it
// if absent. When two first-touch requests race, the unique index on
// (student_id, course_id) rejects the losing insert; the retry then hits
// the winner's document as a plain update.
func (r *progressRepo) upsert(ctx context.Context, studentID, courseID uint, update bson.M) error {
	filter := bson.M{"student_id": studentID, "course_id": courseID}
	update["$setOnInsert"] = bson.M{"created_at": time.Now()}

	_, err := r.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.collection().UpdateOne(ctx, filter, update)
	}
	return err
}

// AddCompletedLecture is idempotent: $addToSet never duplicates an
// already-completed lecture.
func (r *progressRepo) AddCompletedLecture(ctx context.Context, studentID, courseID uint, lectureID primitive.ObjectID) error {
	return r.upsert(ctx, studentID, courseID, bson.M{
		"$addToSet": bson.M{"completed_lectures": lectureID},
	})
}

// AppendScore pushes the attempt onto scores; prior attempts are kept.
func (r *progressRepo) AppendScore(ctx context.Context, studentID, courseID uint, entry domain.ScoreEntry) error {
	return r.upsert(ctx, studentID, courseID, bson.M{
		"$push": bson.M{"scores": entry},
	})
}

// RemoveLectureRefs pulls a deleted lecture out of every progress
// document in its course, so completion counts never exceed the lecture
// total.
func (r *progressRepo) RemoveLectureRefs(ctx context.Context, courseID uint, lectureID primitive.ObjectID) error {
	filter := bson.M{"course_id": courseID}
	update := bson.M{
		"$pull": bson.M{
			"completed_lectures": lectureID,
			"scores":             bson.M{"lecture_id": lectureID},
		},
	}
	_, err := r.collection().UpdateMany(ctx, filter, update)
	return err
}
