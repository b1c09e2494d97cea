package logging

import "context"

type ContextKey uint8

const (
	BuildID ContextKey = iota
	Stage
)

func WithBuildID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BuildID, id)
}

func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, Stage, stage)
}
