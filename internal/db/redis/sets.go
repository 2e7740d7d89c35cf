package redis

import (
	"context"
	"strconv"

	"github.com/swm-sink/la-factoria-content-factory-sub002/internal/db"
)

// SAdd adds members to a set.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SRem removes members from a set.
func (s *Store) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Srem().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	return nil
}

// SMembers returns all members of a set.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// ZAdd adds scored members to a sorted set.
func (s *Store) ZAdd(ctx context.Context, key string, members ...db.ZMember) error {
	if len(members) == 0 {
		return nil
	}
	partial := s.b().Zadd().Key(key).ScoreMember()
	for _, m := range members {
		partial = partial.ScoreMember(m.Score, m.Member)
	}
	if err := s.do(ctx, partial.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRangeByScore returns members with min <= score <= max, ascending by
// score, truncated to limit (0 = no limit).
func (s *Store) ZRangeByScore(ctx context.Context, key string, min, max float64, limit int) ([]string, error) {
	minArg := strconv.FormatFloat(min, 'f', -1, 64)
	maxArg := strconv.FormatFloat(max, 'f', -1, 64)

	partial := s.b().Zrangebyscore().Key(key).Min(minArg).Max(maxArg)
	var members []string
	var err error
	if limit > 0 {
		members, err = s.do(ctx, partial.Limit(0, int64(limit)).Build()).AsStrSlice()
	} else {
		members, err = s.do(ctx, partial.Build()).AsStrSlice()
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}

// ZCard returns the cardinality of a sorted set.
func (s *Store) ZCard(ctx context.Context, key string) (int, error) {
	cmd := s.b().Zcard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpZCard, Err: err}
	}
	return int(n), nil
}
