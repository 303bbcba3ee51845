package domain

import "errors"

var (
	// ErrBattleNotFound is returned when the referenced battle does not exist.
	ErrBattleNotFound = errors.New("battle not found")
	// ErrBattleNotJoinable is returned when joining a battle that is not waiting.
	ErrBattleNotJoinable = errors.New("battle is not joinable")
	// ErrSelfJoin is returned when a creator tries to join their own battle.
	ErrSelfJoin = errors.New("cannot join own battle")
	// ErrParticipantNotFound is returned when an answer names a user outside the battle.
	ErrParticipantNotFound = errors.New("participant not found in battle")
	// ErrTopicNotFound indicates the topic has no questions in the bank.
	ErrTopicNotFound = errors.New("topic not found")
)
