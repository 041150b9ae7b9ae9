package cache

import (
	"context"

	redisClient "github.com/go-redis/redis"
)

// Redis stores values as plain keys without expiry.
type Redis struct {
	client *redisClient.Client
}

// NewRedis connects to addr and checks the server answers.
func NewRedis(addr string, db int) (*Redis, error) {
	client := redisClient.NewClient(&redisClient.Options{Addr: addr, DB: db})
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, unavailable("ping", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, unavailable("get", err)
	}

	v, err := r.client.Get(key).Bytes()
	if err == redisClient.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get", err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable("set", err)
	}

	if err := r.client.Set(key, value, 0).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
