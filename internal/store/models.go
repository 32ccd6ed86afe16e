package store

import "time"

// AudioSession is one user-visible unit of work: an uploaded audio source plus
// the query parameters of its last pipeline run. Sessions start empty and are
// filled in when a run completes. There is no deletion path.
type AudioSession struct {
	ID             int64     `gorm:"primaryKey"`
	SessionName    string    `gorm:"not null"`
	CreatedTime    time.Time `gorm:"autoCreateTime"`
	QueryLang      string    `gorm:"not null"`
	QueryFile      string    `gorm:"not null"`
	QueryPrompt    string    `gorm:"not null"`
	QueryAudioKind string    `gorm:"not null"`

	Output *Output `gorm:"foreignKey:AudioSessionID"`
}

// Output is the persisted (transcription, notes) pair for a session. The
// unique index on AudioSessionID enforces the optional one-to-one: a second
// pipeline run overwrites the text fields instead of inserting a new row.
type Output struct {
	ID                int64     `gorm:"primaryKey"`
	CreatedTime       time.Time `gorm:"autoCreateTime"`
	TranscriptionText string    `gorm:"not null"`
	NotesText         string    `gorm:"not null"`
	AudioSessionID    int64     `gorm:"uniqueIndex;not null"`
}

// SessionMetadata carries the per-run query parameters recorded on the
// session when a pipeline run completes.
type SessionMetadata struct {
	Name      string
	File      string
	Lang      string
	Prompt    string
	AudioKind string
}
