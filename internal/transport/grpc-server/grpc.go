package grpcserver

import (
	"context"
	"errors"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/service/wall"
	"github.com/IlianBuh/Wall-service/internal/transport/validate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type WallService interface {
	// Feed returns current snapshot of the wall
	Feed() wall.Feed

	// SubmitPost appends new post to the wall
	SubmitPost(ctx context.Context, author string, message string) (models.Post, error)

	// Status returns session diagnostics
	Status(ctx context.Context) models.Status

	// Subscribe registers listener of wall changes. Returned func removes it
	Subscribe(listener func(wall.Feed)) func()
}

type ServerAPI struct {
	srvc    WallService
	timeout time.Duration
}

// Register registers serverAPI on srv grpc-server
func Register(srv grpc.ServiceRegistrar, wallService WallService, timeout time.Duration) {
	srv.RegisterService(&ServiceDesc, &ServerAPI{srvc: wallService, timeout: timeout})
}

// ListPosts returns feed snapshot
func (s *ServerAPI) ListPosts(ctx context.Context, _ *ListPostsRequest) (*ListPostsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	return toFeed(s.srvc.Feed()), nil
}

// SubmitPost makes request to service layer to create a new post
func (s *ServerAPI) SubmitPost(ctx context.Context, req *SubmitPostRequest) (*SubmitPostResponse, error) {
	var err error
	if err = ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	if err = validate.Author(req.Author); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err = validate.Message(req.Message); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	post, err := s.srvc.SubmitPost(ctx, req.Author, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, wall.ErrStorage):
			return &SubmitPostResponse{Post: toPost(post), Warning: wall.ErrStorage.Error()}, nil
		case errors.Is(err, wall.ErrEmptyMessage), errors.Is(err, wall.ErrEmptyAuthor):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, wall.ErrNotReady):
			return nil, status.Error(codes.Unavailable, wall.ErrNotReady.Error())
		case errors.Is(err, wall.ErrBackend):
			return nil, status.Error(codes.Unavailable, wall.ErrBackend.Error())
		}
		return nil, status.Error(codes.Internal, codes.Internal.String())
	}

	return &SubmitPostResponse{Post: toPost(post)}, nil
}

// Status returns diagnostics of wall backends
func (s *ServerAPI) Status(ctx context.Context, _ *StatusRequest) (*StatusResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return &StatusResponse{Status: s.srvc.Status(ctx)}, nil
}

// WatchFeed streams current feed and then every change of it until
// the client goes away. Slow clients get only the latest snapshot
func (s *ServerAPI) WatchFeed(_ *WatchFeedRequest, stream grpc.ServerStreamingServer[FeedUpdate]) error {
	ctx := stream.Context()
	updates := make(chan wall.Feed, 1)

	dispose := s.srvc.Subscribe(func(f wall.Feed) {
		for {
			select {
			case updates <- f:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer dispose()

	if err := stream.Send(toFeed(s.srvc.Feed())); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-updates:
			if err := stream.Send(toFeed(f)); err != nil {
				return err
			}
		}
	}
}

func (s *ServerAPI) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}
