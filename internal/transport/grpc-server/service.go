package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "wall.v1.Wall"

type WallServer interface {
	ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error)
	SubmitPost(context.Context, *SubmitPostRequest) (*SubmitPostResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
	WatchFeed(*WatchFeedRequest, grpc.ServerStreamingServer[FeedUpdate]) error
}

// ServiceDesc describes wall.v1.Wall service. Messages are json encoded
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*WallServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListPosts",
			Handler:    listPostsHandler,
		},
		{
			MethodName: "SubmitPost",
			Handler:    submitPostHandler,
		},
		{
			MethodName: "Status",
			Handler:    statusHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchFeed",
			Handler:       watchFeedHandler,
			ServerStreams: true,
		},
	},
}

func listPostsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListPostsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WallServer).ListPosts(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ListPosts"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WallServer).ListPosts(ctx, req.(*ListPostsRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func submitPostHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitPostRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WallServer).SubmitPost(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/SubmitPost"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WallServer).SubmitPost(ctx, req.(*SubmitPostRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WallServer).Status(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Status"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WallServer).Status(ctx, req.(*StatusRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func watchFeedHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchFeedRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	return srv.(WallServer).WatchFeed(in, &grpc.GenericServerStream[WatchFeedRequest, FeedUpdate]{ServerStream: stream})
}
