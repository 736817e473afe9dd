package mongodb

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrackRepository struct {
	tracks  *mongo.Collection
	prompts *mongo.Collection
}

func NewTrackRepository(client *Client) *TrackRepository {
	return &TrackRepository{
		tracks:  client.Collection(CollectionTracks),
		prompts: client.Collection(CollectionPrompts),
	}
}

func (r *TrackRepository) List(ctx context.Context) ([]challenge.Track, error) {
	cursor, err := r.tracks.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, crerr.Wrap(err, "find tracks")
	}
	defer cursor.Close(ctx)

	var docs []trackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, crerr.Wrap(err, "decode tracks")
	}
	out := make([]challenge.Track, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TrackRepository) GetByID(ctx context.Context, trackID string) (challenge.Track, bool, error) {
	var doc trackDocument
	if err := r.tracks.FindOne(ctx, bson.M{"_id": trackID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return challenge.Track{}, false, nil
		}
		return challenge.Track{}, false, crerr.Wrapf(err, "find track %s", trackID)
	}
	return doc.toDomain(), true, nil
}

func (r *TrackRepository) GetPrompt(ctx context.Context, trackID string, day int) (challenge.Prompt, bool, error) {
	var doc promptDocument
	if err := r.prompts.FindOne(ctx, bson.M{"track_id": trackID, "day": day}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return challenge.Prompt{}, false, nil
		}
		return challenge.Prompt{}, false, crerr.Wrapf(err, "find prompt %s day %d", trackID, day)
	}
	return doc.toDomain(), true, nil
}

// Seed upserts tracks and prompts; existing documents are overwritten.
func (r *TrackRepository) Seed(ctx context.Context, tracks []challenge.Track, prompts []challenge.Prompt) error {
	if len(tracks) > 0 {
		models := make([]mongo.WriteModel, 0, len(tracks))
		for _, t := range tracks {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": t.ID}).
				SetReplacement(trackFromDomain(t)).
				SetUpsert(true))
		}
		if _, err := r.tracks.BulkWrite(ctx, models); err != nil {
			return crerr.Wrap(err, "seed tracks")
		}
	}
	if len(prompts) > 0 {
		models := make([]mongo.WriteModel, 0, len(prompts))
		for _, p := range prompts {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"track_id": p.TrackID, "day": p.Day}).
				SetReplacement(promptDocument{TrackID: p.TrackID, Day: p.Day, Title: p.Title, Body: p.Body}).
				SetUpsert(true))
		}
		if _, err := r.prompts.BulkWrite(ctx, models); err != nil {
			return crerr.Wrap(err, "seed prompts")
		}
	}
	return nil
}

type UnlockCodeRepository struct {
	codes *mongo.Collection
}

func NewUnlockCodeRepository(client *Client) *UnlockCodeRepository {
	return &UnlockCodeRepository{codes: client.Collection(CollectionUnlockCodes)}
}

func (r *UnlockCodeRepository) CreateMany(ctx context.Context, codes []challenge.UnlockCode) error {
	if len(codes) == 0 {
		return nil
	}
	docs := make([]any, 0, len(codes))
	for _, c := range codes {
		docs = append(docs, unlockCodeFromDomain(c))
	}
	if _, err := r.codes.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return crerr.Wrap(err, "unlock code collision")
		}
		return crerr.Wrap(err, "insert unlock codes")
	}
	return nil
}

func (r *UnlockCodeRepository) GetByCode(ctx context.Context, code string) (challenge.UnlockCode, bool, error) {
	var doc unlockCodeDocument
	if err := r.codes.FindOne(ctx, bson.M{"_id": code}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return challenge.UnlockCode{}, false, nil
		}
		return challenge.UnlockCode{}, false, crerr.Wrap(err, "find unlock code")
	}
	return doc.toDomain(), true, nil
}

// MarkRedeemed only matches documents without redeemed_at, so concurrent claims
// resolve to a single winner.
func (r *UnlockCodeRepository) MarkRedeemed(ctx context.Context, code, userID string, at time.Time) (bool, error) {
	res, err := r.codes.UpdateOne(ctx,
		bson.M{"_id": code, "redeemed_at": nil},
		bson.M{"$set": bson.M{"redeemed_by": userID, "redeemed_at": at.UTC()}},
	)
	if err != nil {
		return false, crerr.Wrap(err, "mark unlock code redeemed")
	}
	return res.ModifiedCount == 1, nil
}

type SettingsRepository struct {
	settings *mongo.Collection
}

func NewSettingsRepository(client *Client) *SettingsRepository {
	return &SettingsRepository{settings: client.Collection(CollectionSettings)}
}

func (r *SettingsRepository) Get(ctx context.Context, userID string) (challenge.UserSettings, bool, error) {
	var doc settingsDocument
	if err := r.settings.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return challenge.UserSettings{}, false, nil
		}
		return challenge.UserSettings{}, false, crerr.Wrapf(err, "find settings for %s", userID)
	}
	return doc.toDomain(), true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings challenge.UserSettings) error {
	_, err := r.settings.ReplaceOne(ctx,
		bson.M{"_id": settings.UserID},
		settingsFromDomain(settings),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return crerr.Wrapf(err, "save settings for %s", settings.UserID)
	}
	return nil
}

type JournalRepository struct {
	entries *mongo.Collection
}

func NewJournalRepository(client *Client) *JournalRepository {
	return &JournalRepository{entries: client.Collection(CollectionJournal)}
}

func (r *JournalRepository) Upsert(ctx context.Context, entry challenge.JournalEntry) error {
	filter := bson.M{"user_id": entry.UserID, "track_id": entry.TrackID, "day": entry.Day}
	update := bson.M{
		"$set":         bson.M{"body": entry.Body, "updated_at": entry.UpdatedAt.UTC()},
		"$setOnInsert": bson.M{"created_at": entry.CreatedAt.UTC()},
	}
	if _, err := r.entries.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return crerr.Wrap(err, "upsert journal entry")
	}
	return nil
}

func (r *JournalRepository) ListByTrack(ctx context.Context, userID, trackID string) ([]challenge.JournalEntry, error) {
	cursor, err := r.entries.Find(ctx,
		bson.M{"user_id": userID, "track_id": trackID},
		options.Find().SetSort(bson.D{{Key: "day", Value: 1}}),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "find journal entries")
	}
	defer cursor.Close(ctx)

	var docs []journalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, crerr.Wrap(err, "decode journal entries")
	}
	out := make([]challenge.JournalEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
