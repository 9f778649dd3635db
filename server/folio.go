package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/goto/salt/log"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/goto/folio/config"
	bHandler "github.com/goto/folio/core/blog/handler/v1beta1"
	bService "github.com/goto/folio/core/blog/service"
	"github.com/goto/folio/core/event/moderator"
	"github.com/goto/folio/ext/bucket"
	"github.com/goto/folio/ext/markdown"
	"github.com/goto/folio/ext/metadata"
	"github.com/goto/folio/ext/transport/kafka"
	"github.com/goto/folio/internal/auth"
	"github.com/goto/folio/internal/errors"
	"github.com/goto/folio/internal/store/postgres"
	bRepo "github.com/goto/folio/internal/store/postgres/blog"
	"github.com/goto/folio/internal/telemetry"
	"github.com/goto/folio/internal/utils"
	oHandler "github.com/goto/folio/server/handler/v1beta1"
)

const (
	dbRetryMax       = 5
	dbRetryBackoffMs = 500
)

type setupFn func() error

type FolioServer struct {
	conf   *config.ServerConfig
	logger log.Logger

	dbPool *pgxpool.Pool
	admin  *auth.Admin
	images *bucket.ImageStore

	grpcAddr   string
	httpAddr   string
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
	gatewayMux *runtime.ServeMux

	cleanupFn []func()

	eventHandler moderator.Handler
}

func New(conf *config.ServerConfig) (*FolioServer, error) {
	addr := fmt.Sprintf(":%d", conf.Serve.PortGRPC)
	httpAddr := fmt.Sprintf(":%d", conf.Serve.Port)
	server := &FolioServer{
		conf:     conf,
		grpcAddr: addr,
		httpAddr: httpAddr,
		logger:   NewLogger(conf.Log.Level.String()),
	}

	setupFns := []setupFn{
		server.setupPublisher,
		server.setupTelemetry,
		server.setupDB,
		server.setupAdmin,
		server.setupBucket,
		server.setupGRPCServer,
		server.setupHandlers,
		server.setupMonitoring,
		server.setupHTTPProxy,
	}

	for _, fn := range setupFns {
		if err := fn(); err != nil {
			return server, err
		}
	}

	server.logger.Info("Starting Folio", "version", config.BuildVersion)
	server.startListening()

	return server, nil
}

func (s *FolioServer) setupPublisher() error {
	if s.conf.Publisher == nil {
		s.eventHandler = moderator.NoOpHandler{}
		return nil
	}

	ch := make(chan []byte, s.conf.Publisher.Buffer)

	var worker *moderator.Worker

	switch s.conf.Publisher.Type {
	case "kafka":
		var kafkaConfig config.PublisherKafkaConfig
		if err := mapstructure.Decode(s.conf.Publisher.Config, &kafkaConfig); err != nil {
			return err
		}

		writer := kafka.NewWriter(kafkaConfig.BrokerURLs, kafkaConfig.Topic, s.logger)
		interval := time.Second * time.Duration(kafkaConfig.BatchIntervalSecond)
		worker = moderator.NewWorker(ch, writer, interval, s.logger)
	default:
		return fmt.Errorf("publisher with type [%s] is not recognized", s.conf.Publisher.Type)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	s.cleanupFn = append(s.cleanupFn, func() {
		cancel()

		if err := worker.Close(); err != nil {
			s.logger.Error("error closing publishing worker: %v", err)
		}
	})

	s.eventHandler = moderator.NewEventHandler(ch, s.logger)
	return nil
}

func (s *FolioServer) setupTelemetry() error {
	teleShutdown, err := telemetry.Init(s.logger, s.conf.Telemetry)
	if err != nil {
		return err
	}

	s.cleanupFn = append(s.cleanupFn, teleShutdown)
	return nil
}

func (s *FolioServer) setupDB() error {
	// the database usually comes up next to the service, give it a few tries
	err := utils.Retry(s.logger, dbRetryMax, dbRetryBackoffMs, func() error {
		return postgres.Migrate(s.conf.Serve.DB.DSN)
	})
	if err != nil {
		return fmt.Errorf("error initializing migration: %w", err)
	}

	s.dbPool, err = postgres.Open(s.conf.Serve.DB)
	if err != nil {
		return fmt.Errorf("postgres.Open: %w", err)
	}

	return nil
}

func (s *FolioServer) setupAdmin() error {
	var err error
	s.admin, err = auth.NewAdmin(s.conf.Admin.Email, s.conf.Admin.Password, bcrypt.DefaultCost)
	return err
}

func (s *FolioServer) setupBucket() error {
	uploads := s.conf.Serve.Uploads

	var err error
	s.images, err = bucket.Open(context.Background(), uploads.URL, uploads.PublicPath, uploads.MaxSizeMB)
	if err != nil {
		return err
	}

	s.cleanupFn = append(s.cleanupFn, func() {
		if err := s.images.Close(); err != nil {
			s.logger.Error("error closing upload bucket: %v", err)
		}
	})
	return nil
}

func (s *FolioServer) setupGRPCServer() error {
	var err error
	s.grpcServer, s.health, err = setupGRPCServer(s.logger)
	return err
}

func (s *FolioServer) setupMonitoring() error {
	grpc_prometheus.Register(s.grpcServer)
	grpc_prometheus.EnableHandlingTimeHistogram(grpc_prometheus.WithHistogramBuckets(prometheus.DefBuckets))

	telemetry.NewGauge("folio_server_info", map[string]string{"version": config.BuildVersion}).Set(1)
	return nil
}

func (s *FolioServer) setupHTTPProxy() error {
	s.httpServer = prepareHTTPProxy(s.logger, s.httpAddr, s.gatewayMux, s.images)
	return nil
}

func (s *FolioServer) startListening() {
	// run our server in a goroutine so that it doesn't block to wait for termination requests
	go func() {
		s.logger.Info("Listening for GRPC at", "address", s.grpcAddr)
		lis, err := net.Listen("tcp", s.grpcAddr)
		if err != nil {
			s.logger.Fatal("failed to listen: %v", err)
		}

		if err = s.grpcServer.Serve(lis); err != nil {
			s.logger.Fatal("failed to serve: %v", err)
		}
	}()
	go func() {
		s.logger.Info("Listening at", "address", s.httpAddr)
		if err := s.httpServer.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				s.logger.Fatal("server error", "error", err)
			}
		}
	}()
}

func (s *FolioServer) Shutdown() {
	s.logger.Warn("Shutting down server")
	if s.health != nil {
		s.health.Shutdown()
	}

	if s.httpServer != nil {
		// Create a deadline to wait for server
		ctxProxy, cancelProxy := context.WithTimeout(context.Background(), shutdownWait)
		defer cancelProxy()

		if err := s.httpServer.Shutdown(ctxProxy); err != nil {
			s.logger.Error("Error in proxy shutdown", err)
		}
	}

	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}

	for _, fn := range s.cleanupFn {
		fn()
	}

	if s.dbPool != nil {
		s.dbPool.Close()
	}

	s.logger.Info("Server shutdown complete")
}

func (s *FolioServer) setupHandlers() error {
	s.gatewayMux = runtime.NewServeMux()

	// Blog bounded context
	blogRepo := bRepo.NewBlogRepository(s.dbPool)
	revisionRepo := bRepo.NewRevisionRepository(s.dbPool)

	renderer := markdown.NewRenderer()
	blogService := bService.NewBlogService(s.logger, blogRepo, revisionRepo, s.images, renderer, s.eventHandler)
	revisionService := bService.NewRevisionService(s.logger, revisionRepo)

	blogHandler := bHandler.NewBlogHandler(s.logger, blogService, revisionService, s.conf.Serve.Uploads.MaxSizeMB)
	if err := blogHandler.RegisterRoutes(s.gatewayMux, s.admin); err != nil {
		return err
	}

	// Metadata
	timeout := time.Second * time.Duration(s.conf.Metadata.TimeoutSeconds)
	titleFetcher := metadata.NewTitleFetcher(s.logger, timeout, s.conf.Metadata.RetryMax)
	if err := bHandler.NewMetadataHandler(s.logger, titleFetcher).RegisterRoutes(s.gatewayMux); err != nil {
		return err
	}

	// version service
	return oHandler.NewVersionHandler(s.logger, config.BuildVersion).RegisterRoutes(s.gatewayMux)
}
