package store

import (
	"context"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ducka/go-marbles/utils"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type redisOptions struct {
	retryAttempts uint
	retryDelay    time.Duration
}

type RedisOption func(*redisOptions)

// WithRetryAttempts sets how many times a failed pipeline is attempted before giving up.
func WithRetryAttempts(attempts uint) RedisOption {
	return func(o *redisOptions) {
		o.retryAttempts = attempts
	}
}

func WithRetryDelay(delay time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.retryDelay = delay
	}
}

type RedisStore[TState any] struct {
	client     redis.UniversalClient
	marshaller utils.Marshaller
	opts       redisOptions
}

func NewRedisStore[TState any](client redis.UniversalClient, options ...RedisOption) *RedisStore[TState] {
	if client == nil {
		panic("client should not be nil")
	}

	opts := redisOptions{
		retryAttempts: 3,
		retryDelay:    50 * time.Millisecond,
	}
	for _, opt := range options {
		opt(&opts)
	}

	return &RedisStore[TState]{
		client:     client,
		marshaller: utils.NewJsonMarshaller(),
		opts:       opts,
	}
}

func (r *RedisStore[TState]) Get(ctx context.Context, keys ...string) ([]StateEntry[TState], error) {
	var cmds []*redis.SliceCmd

	err := r.exec(ctx, func(pipe redis.Pipeliner) {
		cmds = make([]*redis.SliceCmd, 0, len(keys))
		for _, key := range keys {
			cmds = append(cmds, pipe.HMGet(ctx, key, "value", "timestamp"))
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get state entries")
	}

	results := make([]StateEntry[TState], 0, len(cmds))

	for _, cmd := range cmds {
		values, err := cmd.Result()
		if err != nil {
			return nil, err
		}

		// HMGET yields nil fields for a missing key
		if values[0] == nil {
			continue
		}

		var state stateEnvelope[TState]
		if str, ok := values[0].(string); ok && str != "" {
			if err := r.marshaller.Deserialize(str, &state); err != nil {
				return nil, errors.Wrapf(err, "failed to decode state for key %v", cmd.Args()[1])
			}
		}

		var timestamp *int64
		if str, ok := values[1].(string); ok && str != "" {
			i, err := strconv.ParseInt(str, 10, 64)
			if err != nil {
				return nil, err
			}

			timestamp = &i
		}

		results = append(results, StateEntry[TState]{
			Key:       cmd.Args()[1].(string),
			State:     state.V,
			Timestamp: timestamp,
		})
	}

	return results, nil
}

const (
	setStateLuaScript = `
local key = KEYS[1]
local value = ARGV[1]
local expectedTimestamp = ARGV[2]
local expire = tonumber(ARGV[3])  -- Expiration in seconds
local currentTimestamp = redis.call('HGET', key, 'timestamp')
local nextTimestamp = ARGV[4]

-- Check if the timestamp has been modified. If it has, some other process has modified the state concurrently
if not currentTimestamp or currentTimestamp == expectedTimestamp then
	if value == "nil" then
		redis.call('DEL', key)
	else
		redis.call('HSET', key, 'value', value, 'timestamp', nextTimestamp)
		if expire > 0 then
			redis.call('EXPIRE', key, expire)  -- Set the expiration time for the key
		end
	end
	return "ok"
else
	return "conflict"
end
`
)

func (r *RedisStore[TState]) Set(ctx context.Context, entries []StateEntry[TState], options ...StoreOption) error {
	opts := applyOptions(storeOptions{}, options)

	var expiration int64 = -1
	if opts.Expiry != nil {
		expiration = int64(opts.Expiry.Seconds())
	}

	type evalArgs struct {
		key       string
		stateJson string
		timestamp int64
	}

	args := make([]evalArgs, 0, len(entries))
	for _, entry := range entries {
		stateJson := "nil"

		if entry.State != nil {
			var err error
			stateJson, err = r.marshaller.Serialize(&stateEnvelope[TState]{V: entry.State})
			if err != nil {
				return errors.Wrapf(err, "failed to encode state for key %s", entry.Key)
			}
		}

		var currentTimestamp int64 = -1
		if entry.Timestamp != nil {
			currentTimestamp = *entry.Timestamp
		}

		args = append(args, evalArgs{key: entry.Key, stateJson: stateJson, timestamp: currentTimestamp})
	}

	var cmds []*redis.Cmd

	err := r.exec(ctx, func(pipe redis.Pipeliner) {
		cmds = make([]*redis.Cmd, 0, len(args))
		nextTimestamp := time.Now().UnixNano()
		for _, a := range args {
			cmds = append(cmds, pipe.Eval(ctx, setStateLuaScript, []string{a.key}, a.stateJson, a.timestamp, expiration, nextTimestamp))
		}
	})
	if err != nil {
		return errors.Wrap(err, "failed to set state entries")
	}

	conflicts := make([]string, 0)

	for _, cmd := range cmds {
		resp, err := cmd.Result()
		if err != nil {
			return err
		}

		// Eval args are: eval, script, numkeys, key, ...
		key := cmd.Args()[3].(string)

		if result, ok := resp.(string); ok && result == "conflict" {
			conflicts = append(conflicts, key)
		}
	}

	if len(conflicts) > 0 {
		return &StateStoreConflict{conflicts: conflicts}
	}

	return nil
}

// exec builds and executes a pipeline, rebuilding it on every attempt.
func (r *RedisStore[TState]) exec(ctx context.Context, build func(pipe redis.Pipeliner)) error {
	return retry.Do(
		func() error {
			pipe := r.client.Pipeline()
			build(pipe)
			_, err := pipe.Exec(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(r.opts.retryAttempts),
		retry.Delay(r.opts.retryDelay),
		retry.LastErrorOnly(true),
	)
}

type stateEnvelope[TState any] struct {
	V *TState
}
