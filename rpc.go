package main

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Connect procedures for clients that prefer RPC over the REST routes. The
// payloads are structpb maps, so the same JSON shapes travel both surfaces.
const (
	procHealth       = "/jersey.v1.StoreAPI/Health"
	procSearch       = "/jersey.v1.StoreAPI/Search"
	procAutocomplete = "/jersey.v1.StoreAPI/Autocomplete"
)

// RegisterRPC mounts the Connect handlers on the shared mux.
func (s *server) RegisterRPC(mux *http.ServeMux) {
	mux.Handle(procHealth, connect.NewUnaryHandler(procHealth, s.rpcHealth))
	mux.Handle(procSearch, connect.NewUnaryHandler(procSearch, s.rpcSearch))
	mux.Handle(procAutocomplete, connect.NewUnaryHandler(procAutocomplete, s.rpcAutocomplete))
}

// toStructPB round-trips through JSON so nested structs become the basic
// values structpb accepts.
func toStructPB(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var mm map[string]interface{}
	if err := json.Unmarshal(b, &mm); err != nil {
		return nil, err
	}
	return structpb.NewStruct(mm)
}

func (s *server) rpcHealth(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	st, err := toStructPB(map[string]interface{}{"status": "healthy"})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(st), nil
}

func (s *server) rpcSearch(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	args := req.Msg.AsMap()
	limit := firstInt(args, "limit")
	if limit == 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	res, err := s.search.search(firstString(args, "q"), limit, firstInt(args, "offset"))
	if err != nil {
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	products := make([]SearchProduct, 0, len(res.Hits))
	for _, h := range res.Hits {
		products = append(products, normalizeHit(h))
	}
	st, err := toStructPB(map[string]interface{}{
		"products":           products,
		"total":              res.TotalHits,
		"processing_time_ms": res.ProcessingTimeMs,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(st), nil
}

func (s *server) rpcAutocomplete(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	args := req.Msg.AsMap()
	limit := firstInt(args, "limit")
	if limit == 0 {
		limit = 8
	}

	res, err := s.search.search(firstString(args, "q"), limit, 0)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	items := make([]SearchProduct, 0, len(res.Hits))
	for _, h := range res.Hits {
		items = append(items, normalizeHit(h))
	}
	st, err := toStructPB(map[string]interface{}{"items": items})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(st), nil
}
