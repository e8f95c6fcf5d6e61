// Package bootstrap wires every adapter, cache, and service into one
// runnable process: the mutation pipeline (command.UseCase) observed by
// the change-feed listener and the cleanup workqueue, all sharing one pair
// of caches. Grounded on components/consumer/internal/bootstrap's
// Config/InitConsumer/Service shape, adapted from lib-commons to this
// module's own common package.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mcasdoor"
	"github.com/lattice-sh/control-plane/common/mmongo"
	"github.com/lattice-sh/control-plane/common/mpostgres"
	"github.com/lattice-sh/control-plane/common/mrabbitmq"
	"github.com/lattice-sh/control-plane/common/mredis"
	"github.com/lattice-sh/control-plane/common/mzap"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/casdoor"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/changefeed"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/eventbus"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/keycloakdb"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/lock"
	mongoadapter "github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/mongo"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/postgres"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/reload"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/infracache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/usercache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/cleanup"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/workqueue"
)

// ApplicationName identifies this process in the Launcher app registry.
const ApplicationName = "hierarchy"

// changefeedMinReconnect/changefeedMaxReconnect bound pq.Listener's
// internal backoff, matching the interval the teacher's own audit trigger
// listener uses for a LISTEN/NOTIFY connection that must survive a brief
// Postgres restart without the operator noticing.
const (
	changefeedMinReconnect = 10 * time.Second
	changefeedMaxReconnect = time.Minute
)

// Config is the env-driven configuration for the whole process, covering
// spec.md §6's enumerated options plus the ambient connection parameters
// every adapter needs.
type Config struct {
	EnvName  string `env:"ENV_NAME"`
	LogLevel string `env:"LOG_LEVEL"`

	// Hierarchy database: customers/organizations/institutions/
	// organization_units and their change-feed triggers.
	DBHost             string `env:"DB_HOST"`
	DBUser             string `env:"DB_USER"`
	DBPassword         string `env:"DB_PASSWORD"`
	DBName             string `env:"DB_NAME"`
	DBPort             string `env:"DB_PORT"`
	DBReplicaHost      string `env:"DB_REPLICA_HOST"`
	DBReplicaUser      string `env:"DB_REPLICA_USER"`
	DBReplicaPassword  string `env:"DB_REPLICA_PASSWORD"`
	DBReplicaName      string `env:"DB_REPLICA_NAME"`
	DBReplicaPort      string `env:"DB_REPLICA_PORT"`
	DBMaxOpenConns     int    `env:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns     int    `env:"DB_MAX_IDLE_CONNS"`

	// Keycloak's own database: realm/keycloak_role/keycloak_group/
	// group_attribute/user_role_mapping/user_group_membership/user_entity,
	// read-only (internal/adapters/keycloakdb never migrates these tables).
	KeycloakDBHost     string `env:"KEYCLOAK_DB_HOST"`
	KeycloakDBUser     string `env:"KEYCLOAK_DB_USER"`
	KeycloakDBPassword string `env:"KEYCLOAK_DB_PASSWORD"`
	KeycloakDBName     string `env:"KEYCLOAK_DB_NAME"`
	KeycloakDBPort     string `env:"KEYCLOAK_DB_PORT"`

	// Redis backs the distributed lock, the cleanup workqueue, and the
	// reload broadcast pub/sub channel — one client, three consumers.
	RedisURI string `env:"REDIS_URI"`

	// RabbitMQ backs the event bus.
	RabbitURI        string `env:"RABBITMQ_URI"`
	RabbitMQHost     string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQUser     string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass     string `env:"RABBITMQ_DEFAULT_PASS"`

	// Mongo backs the generic non-hierarchy document collections cleaned
	// up by a cascade.
	MongoURI      string `env:"MONGO_URI"`
	MongoDBHost   string `env:"MONGO_HOST"`
	MongoDBName   string `env:"MONGO_NAME"`
	MongoDBUser   string `env:"MONGO_USER"`
	MongoDBPass   string `env:"MONGO_PASSWORD"`
	MongoDBPort   string `env:"MONGO_PORT"`

	// Casdoor is the IdP the Role/Group Materializer targets.
	CasdoorEndpoint         string `env:"CASDOOR_ENDPOINT"`
	CasdoorClientID         string `env:"CASDOOR_CLIENT_ID"`
	CasdoorClientSecret     string `env:"CASDOOR_CLIENT_SECRET"`
	CasdoorCertificate      string `env:"CASDOOR_CERTIFICATE"`
	CasdoorApplicationName  string `env:"CASDOOR_APPLICATION_NAME"`

	// spec.md §6's enumerated configuration.
	CleanupTaskPrefix string `env:"CLEANUP_TASK_PREFIX"`
	LockTTLMs         int    `env:"LOCK_TTL_MS"`
	LockRetries       int    `env:"LOCK_RETRIES"`
	LockBackoffMs     int    `env:"LOCK_BACKOFF_MS"`
	LeaseDurationS    int    `env:"LEASE_DURATION_S"`
	NumWorkers        int    `env:"NUM_WORKERS"`
	Realm             string `env:"REALM"`
	EventTopic        string `env:"EVENT_TOPIC"`
	ReloadChannel     string `env:"RELOAD_CHANNEL"`
}

// applyDefaults fills in the handful of options that must never be zero,
// the way the teacher's InitConsumer guards MaxPoolSize <= 0.
func (c *Config) applyDefaults() {
	if c.CleanupTaskPrefix == "" {
		c.CleanupTaskPrefix = "hierarchy_cleanup"
	}

	if c.LockTTLMs <= 0 {
		c.LockTTLMs = 5000
	}

	if c.LockRetries <= 0 {
		c.LockRetries = 20
	}

	if c.LockBackoffMs <= 0 {
		c.LockBackoffMs = 250
	}

	if c.LeaseDurationS <= 0 {
		c.LeaseDurationS = 30
	}

	if c.NumWorkers <= 0 {
		c.NumWorkers = 4
	}

	if c.EventTopic == "" {
		c.EventTopic = "hierarchy.events"
	}

	if c.ReloadChannel == "" {
		c.ReloadChannel = "hierarchy_reload"
	}
}

// InitHierarchy reads configuration from the environment and assembles a
// fully wired Service, panicking on any connection failure — every
// constructor in this tree already panics eagerly on failed connect, so a
// bad deployment fails at startup rather than on first request.
func InitHierarchy() *Service {
	cfg := &Config{}

	if err := common.SetConfigFromEnvVars(cfg); err != nil {
		panic(err)
	}

	cfg.applyDefaults()

	logger := mzap.InitializeLogger()

	hierarchyDB := &mpostgres.PostgresConnection{
		ConnectionStringPrimary: postgresDSN(cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort),
		ConnectionStringReplica: postgresDSN(cfg.DBReplicaHost, cfg.DBReplicaUser, cfg.DBReplicaPassword, cfg.DBReplicaName, cfg.DBReplicaPort),
		PrimaryDBName:           cfg.DBName,
		ReplicaDBName:           cfg.DBReplicaName,
	}

	keycloakDB := &mpostgres.PostgresConnection{
		ConnectionStringPrimary: postgresDSN(cfg.KeycloakDBHost, cfg.KeycloakDBUser, cfg.KeycloakDBPassword, cfg.KeycloakDBName, cfg.KeycloakDBPort),
		ConnectionStringReplica: postgresDSN(cfg.KeycloakDBHost, cfg.KeycloakDBUser, cfg.KeycloakDBPassword, cfg.KeycloakDBName, cfg.KeycloakDBPort),
		PrimaryDBName:           cfg.KeycloakDBName,
		ReplicaDBName:           cfg.KeycloakDBName,
	}

	redisConn := &mredis.RedisConnection{ConnectionStringSource: cfg.RedisURI, Logger: logger}

	redisClient, err := redisConn.GetDB(context.Background())
	if err != nil {
		panic("failed to connect to redis")
	}

	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s", cfg.RabbitURI, cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPortHost)
	rabbitConn := &mrabbitmq.RabbitMQConnection{ConnectionStringSource: rabbitSource, Logger: logger}

	mongoSource := fmt.Sprintf("%s://%s:%s@%s:%s", cfg.MongoURI, cfg.MongoDBUser, cfg.MongoDBPass, cfg.MongoDBHost, cfg.MongoDBPort)
	mongoConn := &mmongo.MongoConnection{ConnectionStringSource: mongoSource, Database: cfg.MongoDBName}

	certificate := cfg.CasdoorCertificate
	if certificate == "" {
		if embedded, err := mcasdoor.LoadCertificate(); err == nil {
			certificate = string(embedded)
		}
	}

	casdoorConn := &mcasdoor.CasdoorConnection{Conf: &casdoorsdk.AuthConfig{
		Endpoint:         cfg.CasdoorEndpoint,
		ClientId:         cfg.CasdoorClientID,
		ClientSecret:     cfg.CasdoorClientSecret,
		Certificate:      certificate,
		OrganizationName: cfg.Realm,
		ApplicationName:  cfg.CasdoorApplicationName,
	}}

	customerRepo := postgres.NewCustomerRepository(hierarchyDB)
	organizationRepo := postgres.NewOrganizationRepository(hierarchyDB)
	institutionRepo := postgres.NewInstitutionRepository(hierarchyDB)
	organizationUnitRepo := postgres.NewOrganizationUnitRepository(hierarchyDB)

	identityReader := keycloakdb.NewReader(keycloakDB)
	materializer := casdoor.New(casdoorConn, cfg.Realm)

	infra := infracache.New()
	users := usercache.New()

	locker := lock.NewLocker(redisClient)

	queue := workqueue.New(redisClient, cfg.CleanupTaskPrefix)

	producer := eventbus.NewProducer(context.Background(), rabbitConn, cfg.EventTopic)

	docs := mongoadapter.New(mongoConn)

	reloader := reload.New(redisClient, cfg.ReloadChannel, cfg.Realm, reload.HierarchyRepos{
		Customers:         customerRepo,
		Organizations:     organizationRepo,
		Institutions:      institutionRepo,
		OrganizationUnits: organizationUnitRepo,
	}, infra, users, identityReader, logger)

	useCase := &command.UseCase{
		CustomerRepo:         customerRepo,
		OrganizationRepo:     organizationRepo,
		InstitutionRepo:      institutionRepo,
		OrganizationUnitRepo: organizationUnitRepo,
		Lock:                 locker,
		Cache:                infra,
		Users:                users,
		Materializer:         materializer,
		Events:               producer,
		Workqueue:            cleanup.QueueEnqueuer{Queue: queue},
	}

	processor := &cleanup.Processor{
		Queue:        queue,
		Cache:        infra,
		Users:        users,
		Materializer: materializer,
		Docs:         docs,
		Units:        organizationUnitRepo,
		Reload:       reloader,
		Events:       producer,
	}

	listener := changefeed.NewListener(hierarchyDB.ConnectionStringPrimary, logger, changefeedMinReconnect, changefeedMaxReconnect)
	for ch, h := range infra.Handlers() {
		listener.On(ch, h)
	}

	for ch, h := range users.Handlers(materializer) {
		listener.On(ch, h)
	}

	return &Service{
		logger:      logger,
		cfg:         cfg,
		useCase:     useCase,
		processor:   processor,
		listener:    listener,
		reload:      reloader,
		locker:      locker,
		hierarchyDB: hierarchyDB,
		keycloakDB:  keycloakDB,
		redis:       redisConn,
		rabbit:      rabbitConn,
		mongo:       mongoConn,
		casdoorConn: casdoorConn,
		producer:    producer,
	}
}

func postgresDSN(host, user, password, dbname, port string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", host, user, password, dbname, port)
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
