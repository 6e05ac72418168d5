package context

import (
	"context"

	"github.com/muhammadheryan/store/constant"
	"github.com/muhammadheryan/store/model"
)

func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, constant.PrincipalKey, p)
}

func GetPrincipal(ctx context.Context) (*model.Principal, bool) {
	v := ctx.Value(constant.PrincipalKey)
	if v == nil {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constant.RequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(constant.RequestIDKey).(string)
	return id
}
