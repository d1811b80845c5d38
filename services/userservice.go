package services

import (
	"context"
	"errors"
	"time"

	"mindmap/model"
	"mindmap/store"
)

const usersCollection = "Users"

func UserExists(ctx context.Context, st store.DocumentStore, email string) (bool, error) {
	snaps, err := st.Query(ctx, usersCollection, store.Filter{Path: "email", Value: email})
	if err != nil {
		return false, err
	}
	return len(snaps) > 0, nil
}

func GetUserByEmail(ctx context.Context, st store.DocumentStore, email string) (model.User, error) {
	snaps, err := st.Query(ctx, usersCollection, store.Filter{Path: "email", Value: email})
	if err != nil {
		return model.User{}, err
	}
	if len(snaps) == 0 {
		return model.User{}, ErrUserNotFound
	}
	return userFromDoc(snaps[0].ID, snaps[0].Data), nil
}

func GetUserByID(ctx context.Context, st store.DocumentStore, userID string) (model.User, error) {
	data, err := st.Get(ctx, usersCollection, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return userFromDoc(userID, data), nil
}

func UserDoc(u model.User) map[string]interface{} {
	return map[string]interface{}{
		"name":      u.Name,
		"email":     u.Email,
		"password":  u.Password,
		"role":      u.Role,
		"createdAt": u.CreatedAt.UTC(),
	}
}

func userFromDoc(id string, data map[string]interface{}) model.User {
	u := model.User{UserID: id}
	u.Name, _ = data["name"].(string)
	u.Email, _ = data["email"].(string)
	u.Password, _ = data["password"].(string)
	u.Role, _ = data["role"].(string)
	if t, ok := data["createdAt"].(time.Time); ok {
		u.CreatedAt = t
	}
	return u
}
