package handlers

import (
	"context"

	"github.com/dkotelnikov/eventory/internal/application/catalog"
	"github.com/dkotelnikov/eventory/internal/application/event"
	"github.com/dkotelnikov/eventory/internal/transport/http/dto"
)

// refResolver turns category and initiator ids into their display objects,
// resolving each distinct id once per request.
type refResolver struct {
	catalog *catalog.Service
	cats    map[int64]dto.CategoryDto
	users   map[int64]dto.UserShort
}

func newRefResolver(c *catalog.Service) *refResolver {
	return &refResolver{
		catalog: c,
		cats:    map[int64]dto.CategoryDto{},
		users:   map[int64]dto.UserShort{},
	}
}

func (rr *refResolver) category(ctx context.Context, id int64) dto.CategoryDto {
	if c, ok := rr.cats[id]; ok {
		return c
	}
	out := dto.CategoryDto{ID: id}
	if c, err := rr.catalog.GetCategory(ctx, id); err == nil {
		out = dto.ToCategoryDto(c)
	}
	rr.cats[id] = out
	return out
}

func (rr *refResolver) user(ctx context.Context, id int64) dto.UserShort {
	if u, ok := rr.users[id]; ok {
		return u
	}
	out := dto.UserShort{ID: id}
	if u, err := rr.catalog.GetUser(ctx, id); err == nil {
		out = dto.ToUserShort(u)
	}
	rr.users[id] = out
	return out
}

func (rr *refResolver) fullDto(ctx context.Context, ws *event.WithStats) dto.EventFullDto {
	return dto.ToEventFullDto(ws,
		rr.category(ctx, ws.Event.CategoryID),
		rr.user(ctx, ws.Event.InitiatorID))
}

func (rr *refResolver) shortDtos(ctx context.Context, items []*event.WithStats) []dto.EventShortDto {
	out := make([]dto.EventShortDto, 0, len(items))
	for _, ws := range items {
		out = append(out, dto.ToEventShortDto(ws,
			rr.category(ctx, ws.Event.CategoryID),
			rr.user(ctx, ws.Event.InitiatorID)))
	}
	return out
}

func (rr *refResolver) fullDtos(ctx context.Context, items []*event.WithStats) []dto.EventFullDto {
	out := make([]dto.EventFullDto, 0, len(items))
	for _, ws := range items {
		out = append(out, rr.fullDto(ctx, ws))
	}
	return out
}
