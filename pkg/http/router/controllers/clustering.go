package controllers

import (
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/frustration-ig/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
	"go.uber.org/zap"
)

type clusteringAPI struct {
	clusteringService ClusteringService
	hub               *Hub
	log               *zap.Logger
}

func New(clusteringService ClusteringService, hub *Hub, log *zap.Logger) *clusteringAPI {
	return &clusteringAPI{
		clusteringService: clusteringService,
		hub:               hub,
		log:               log,
	}
}

func (api *clusteringAPI) Routes(group *helper.RouteGroup) {
	group.POST("/cluster", api.cluster)
	group.GET("/cluster/stream", api.clusterStream)
}

// cluster godoc
//
//	@Summary		minimize the frustration of a signed graph
//	@Description	run the iterated greedy clustering on the posted signed graph and return the best partition found.
//	@Tags			clustering
//	@Accept			json
//	@Produce		json
//	@Param			body	body		clusterRequest	true	"signed graph and search parameters"
//	@Success		200		{object}	clusterResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/cluster [post]
func (api *clusteringAPI) cluster(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := newClusterRequest()
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if msgs := util.ValidateStruct(request); len(msgs) > 0 {
		api.errorResponse(w, r, http.StatusBadRequest, "validation error: "+util.JoinMessages(msgs))
		return
	}

	res, err := api.clusteringService.Cluster(r.Context(), request.toClusteringRequest(), nil)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewClusterResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

/*
clusterStream. websocket endpoint. every text message from the client is a cluster request; the server answers with
one {"iteration": ...} message per iterated greedy iteration followed by a {"data": ...} message with the result, or
a single {"error": ...} message. the connection stays open for further requests until the client closes it.
*/
func (api *clusteringAPI) clusterStream(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		return
	}
	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	// the hijacked connection keeps the read deadline of the http server.
	if err := conn.SetDeadline(time.Time{}); err != nil {
		api.log.Info("reset deadline error", zap.Error(err))
	}

	user := api.hub.Register(conn)
	defer api.hub.Remove(user)

	if err := user.Serve(r.Context()); err != nil {
		api.log.Info("websocket connection closed", zap.Error(err), zap.String("connection name", nameConn(conn)))
	}
}
