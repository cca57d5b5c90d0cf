package repository

import (
	"context"
	"errors"
	"time"

	authdomain "sathee-backend/internal/auth/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateEmail reports a write rejected by the unique email index.
var ErrDuplicateEmail = errors.New("email already in use")

// userRepository implements UserRepository on a MongoDB collection.
type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new instance of userRepository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		col: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]authdomain.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []authdomain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"resetPasswordToken":   tokenHash,
			"resetPasswordExpires": expiresAt,
			"updatedAt":            time.Now(),
		}},
	)
	return err
}

func (r *userRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (*authdomain.User, error) {
	// Single document update keeps the password change and the token
	// clearing atomic, so a concurrent reset attempt with the same code
	// cannot succeed twice.
	var user authdomain.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{
			"resetPasswordToken":   tokenHash,
			"resetPasswordExpires": bson.M{"$gt": now},
		},
		bson.M{
			"$set":   bson.M{"password": newPasswordHash, "updatedAt": time.Now()},
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
		},
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// HashPassword hashes a password using bcrypt with a work factor of 12.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
