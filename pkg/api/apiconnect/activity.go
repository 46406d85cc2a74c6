package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/outingsplit/pkg/api"
)

// ActivityServiceName is the fully-qualified name of the ActivityService service.
const ActivityServiceName = "outingsplit.v1.ActivityService"

// Procedure paths of ActivityService.
const (
	ActivityServicePreviewActivityProcedure = "/outingsplit.v1.ActivityService/PreviewActivity"
	ActivityServiceCreateActivityProcedure  = "/outingsplit.v1.ActivityService/CreateActivity"
	ActivityServiceGetActivityProcedure     = "/outingsplit.v1.ActivityService/GetActivity"
	ActivityServiceListActivitiesProcedure  = "/outingsplit.v1.ActivityService/ListActivities"
	ActivityServiceDeleteActivityProcedure  = "/outingsplit.v1.ActivityService/DeleteActivity"
)

// ActivityServiceHandler is implemented by the server side of ActivityService.
type ActivityServiceHandler interface {
	PreviewActivity(context.Context, *connect.Request[api.PreviewActivityRequest]) (*connect.Response[api.PreviewActivityResponse], error)
	CreateActivity(context.Context, *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error)
	GetActivity(context.Context, *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error)
	ListActivities(context.Context, *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error)
	DeleteActivity(context.Context, *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error)
}

// NewActivityServiceHandler builds an HTTP handler for every ActivityService
// procedure and returns the path prefix to mount it on.
func NewActivityServiceHandler(svc ActivityServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(ActivityServicePreviewActivityProcedure, connect.NewUnaryHandler(ActivityServicePreviewActivityProcedure, svc.PreviewActivity, opts...))
	mux.Handle(ActivityServiceCreateActivityProcedure, connect.NewUnaryHandler(ActivityServiceCreateActivityProcedure, svc.CreateActivity, opts...))
	mux.Handle(ActivityServiceGetActivityProcedure, connect.NewUnaryHandler(ActivityServiceGetActivityProcedure, svc.GetActivity, opts...))
	mux.Handle(ActivityServiceListActivitiesProcedure, connect.NewUnaryHandler(ActivityServiceListActivitiesProcedure, svc.ListActivities, opts...))
	mux.Handle(ActivityServiceDeleteActivityProcedure, connect.NewUnaryHandler(ActivityServiceDeleteActivityProcedure, svc.DeleteActivity, opts...))
	return "/" + ActivityServiceName + "/", mux
}

// UnimplementedActivityServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedActivityServiceHandler struct{}

func (UnimplementedActivityServiceHandler) PreviewActivity(context.Context, *connect.Request[api.PreviewActivityRequest]) (*connect.Response[api.PreviewActivityResponse], error) {
	return nil, unimplemented(ActivityServicePreviewActivityProcedure)
}

func (UnimplementedActivityServiceHandler) CreateActivity(context.Context, *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error) {
	return nil, unimplemented(ActivityServiceCreateActivityProcedure)
}

func (UnimplementedActivityServiceHandler) GetActivity(context.Context, *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	return nil, unimplemented(ActivityServiceGetActivityProcedure)
}

func (UnimplementedActivityServiceHandler) ListActivities(context.Context, *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	return nil, unimplemented(ActivityServiceListActivitiesProcedure)
}

func (UnimplementedActivityServiceHandler) DeleteActivity(context.Context, *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error) {
	return nil, unimplemented(ActivityServiceDeleteActivityProcedure)
}

// ActivityServiceClient is a client for ActivityService.
type ActivityServiceClient struct {
	previewActivity *connect.Client[api.PreviewActivityRequest, api.PreviewActivityResponse]
	createActivity  *connect.Client[api.CreateActivityRequest, api.CreateActivityResponse]
	getActivity     *connect.Client[api.GetActivityRequest, api.GetActivityResponse]
	listActivities  *connect.Client[api.ListActivitiesRequest, api.ListActivitiesResponse]
	deleteActivity  *connect.Client[api.DeleteActivityRequest, api.DeleteActivityResponse]
}

// NewActivityServiceClient constructs a client for ActivityService at baseURL.
func NewActivityServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ActivityServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &ActivityServiceClient{
		previewActivity: connect.NewClient[api.PreviewActivityRequest, api.PreviewActivityResponse](httpClient, baseURL+ActivityServicePreviewActivityProcedure, opts...),
		createActivity:  connect.NewClient[api.CreateActivityRequest, api.CreateActivityResponse](httpClient, baseURL+ActivityServiceCreateActivityProcedure, opts...),
		getActivity:     connect.NewClient[api.GetActivityRequest, api.GetActivityResponse](httpClient, baseURL+ActivityServiceGetActivityProcedure, opts...),
		listActivities:  connect.NewClient[api.ListActivitiesRequest, api.ListActivitiesResponse](httpClient, baseURL+ActivityServiceListActivitiesProcedure, opts...),
		deleteActivity:  connect.NewClient[api.DeleteActivityRequest, api.DeleteActivityResponse](httpClient, baseURL+ActivityServiceDeleteActivityProcedure, opts...),
	}
}

func (c *ActivityServiceClient) PreviewActivity(ctx context.Context, req *connect.Request[api.PreviewActivityRequest]) (*connect.Response[api.PreviewActivityResponse], error) {
	return c.previewActivity.CallUnary(ctx, req)
}

func (c *ActivityServiceClient) CreateActivity(ctx context.Context, req *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error) {
	return c.createActivity.CallUnary(ctx, req)
}

func (c *ActivityServiceClient) GetActivity(ctx context.Context, req *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	return c.getActivity.CallUnary(ctx, req)
}

func (c *ActivityServiceClient) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	return c.listActivities.CallUnary(ctx, req)
}

func (c *ActivityServiceClient) DeleteActivity(ctx context.Context, req *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error) {
	return c.deleteActivity.CallUnary(ctx, req)
}
