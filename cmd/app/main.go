package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/hotelbooking/api"
	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/auth"
	"github.com/Domenick1991/hotelbooking/internal/bootstrap"
	"github.com/Domenick1991/hotelbooking/internal/cache"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/logger"
	"github.com/Domenick1991/hotelbooking/internal/payment"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/Domenick1991/hotelbooking/internal/service/profile"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type stores struct {
	bookings repository.BookingRepository
	hotels   repository.HotelRepository
	profiles repository.ProfileRepository
	checks   map[string]api.HealthCheck
	close    func()
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logg := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logg.WithError(err).Fatal("open data store")
	}
	defer st.close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.HotelsCacheTTL())
	defer redisCache.Close()
	producer := kafka.NewProducer(cfg.Kafka.Brokers, logg)
	defer producer.Close()

	st.checks["redis"] = redisCache.Ping
	st.checks["kafka"] = producer.CheckConnection

	identity := auth.ContextProvider{}
	opts := []booking.BookingServiceOption{
		booking.WithEventsTopic(cfg.Kafka.BookingEventsTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithServiceLogger(logg),
	}
	if cfg.PayPal.Enabled() {
		paypal, err := payment.NewPayPal(cfg.PayPal)
		if err != nil {
			logg.WithError(err).Fatal("init paypal")
		}
		opts = append(opts, booking.WithPayments(paypal, cfg.PayPal.Currency))
	} else {
		logg.Warn("paypal client id not configured, online payment disabled")
	}

	hotelService := hotels.NewHotelService(st.hotels, redisCache, cfg.Booking.HotelsPageSize, logg)
	bookingService := booking.NewBookingService(
		st.bookings,
		st.hotels,
		st.profiles,
		redisCache,
		producer,
		identity,
		cfg.Booking.SubmitLockTTL(),
		opts...,
	)
	profileService := profile.NewProfileService(st.profiles, identity)
	ownerService := hotels.NewOwnerService(st.hotels, st.bookings, redisCache, identity, logg)

	router := api.NewRouter(cfg.HTTP, logg, auth.NewVerifier(cfg.Auth.JWTSecret), st.checks, api.Handlers{
		Hotels:   api.NewHotelHandler(hotelService),
		Bookings: api.NewBookingHandler(bookingService),
		Profile:  api.NewProfileHandler(profileService),
		Owner:    api.NewOwnerHandler(ownerService),
	})

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, logg); err != nil {
		logg.WithError(err).Fatal("server error")
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		return &stores{
			bookings: repository.NewBookingRepository(pool),
			hotels:   repository.NewHotelRepository(pool),
			profiles: repository.NewProfileRepository(pool),
			checks:   map[string]api.HealthCheck{"postgres": pool.Ping},
			close:    pool.Close,
		}, nil
	default:
		client, err := repository.NewSupabaseClient(cfg.Supabase)
		if err != nil {
			return nil, err
		}
		return &stores{
			bookings: repository.NewSupabaseBookingRepository(client),
			hotels:   repository.NewSupabaseHotelRepository(client),
			profiles: repository.NewSupabaseProfileRepository(client),
			checks:   map[string]api.HealthCheck{},
			close:    func() {},
		}, nil
	}
}
