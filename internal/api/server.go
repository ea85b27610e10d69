package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/relief-api/docs"
	v1 "github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/config"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/metrics"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/service"
)

const (
	basePath        = "/api/v1"
	shutdownTimeout = 10 * time.Second
)

// Version is reported by /status and the Swagger UI.
var Version = "1.0.0"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	limiter *middleware.RateLimiter
}

type handlers struct {
	status          *v1.StatusHandler
	profile         *v1.ProfileHandler
	person          *v1.PersonHandler
	address         *v1.AddressHandler
	volunteer       *v1.VolunteerHandler
	mission         *v1.MissionHandler
	application     *v1.ApplicationHandler
	news            *v1.NewsHandler
	newsImage       *v1.NewsImageHandler
	collectionPoint *v1.CollectionPointHandler
	need            *v1.NeedHandler
	donation        *v1.DonationHandler
	donationItem    *v1.DonationItemHandler
	catalog         *v1.CatalogHandler
	authenticator   *middleware.Authenticator
}

// repositories are shared by every service so each DAO is built once.
type repositories struct {
	tx               *dao.Transactor
	profiles         *repository.ProfileRepository
	people           *repository.PersonRepository
	addresses        *repository.AddressRepository
	volunteers       *repository.VolunteerRepository
	missions         *repository.MissionRepository
	applications     *repository.ApplicationRepository
	news             *repository.NewsRepository
	newsImages       *repository.NewsImageRepository
	collectionPoints *repository.CollectionPointRepository
	needs            *repository.NeedRepository
	donations        *repository.DonationRepository
	catalog          *repository.CatalogRepository
}

func NewServer(conf *config.AppConfig, db *gorm.DB, auth middleware.TokenValidator) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	decimal.MarshalJSONWithoutQuotes = true

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}

	s := &Server{
		Config:  conf,
		Router:  gin.New(),
		limiter: middleware.NewRateLimiter(conf.RateLimit),
	}

	s.MountMiddlewares()

	h := s.initHandlers(newRepositories(db))
	h.status = v1.NewStatusHandler(sqlDB, Version)
	h.authenticator = middleware.NewAuthenticator(auth)
	s.MountHandlers(h)

	return s, nil
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		tx:               dao.NewTransactor(db),
		profiles:         repository.NewProfileRepository(dao.NewProfileDAO(db)),
		people:           repository.NewPersonRepository(dao.NewPersonDAO(db)),
		addresses:        repository.NewAddressRepository(dao.NewAddressDAO(db)),
		volunteers:       repository.NewVolunteerRepository(dao.NewVolunteerDAO(db)),
		missions:         repository.NewMissionRepository(dao.NewMissionDAO(db)),
		applications:     repository.NewApplicationRepository(dao.NewApplicationDAO(db)),
		news:             repository.NewNewsRepository(dao.NewNewsDAO(db)),
		newsImages:       repository.NewNewsImageRepository(dao.NewNewsImageDAO(db)),
		collectionPoints: repository.NewCollectionPointRepository(dao.NewCollectionPointDAO(db)),
		needs:            repository.NewNeedRepository(dao.NewNeedDAO(db)),
		donations:        repository.NewDonationRepository(dao.NewDonationDAO(db), dao.NewDonationItemDAO(db)),
		catalog:          repository.NewCatalogRepository(dao.NewCatalogDAO(db)),
	}
}

func (s *Server) initHandlers(r *repositories) *handlers {
	defaultCity := s.Config.Defaults.CityID

	return &handlers{
		profile:     v1.NewProfileHandler(service.NewProfileService(r.profiles)),
		person:      v1.NewPersonHandler(service.NewPersonService(r.people, r.profiles)),
		address:     v1.NewAddressHandler(service.NewAddressService(r.tx, r.addresses, r.people, r.catalog)),
		volunteer:   v1.NewVolunteerHandler(service.NewVolunteerService(r.volunteers, r.people)),
		mission:     v1.NewMissionHandler(service.NewMissionService(r.tx, r.missions, r.catalog, r.people, defaultCity)),
		application: v1.NewApplicationHandler(service.NewApplicationService(r.tx, r.applications, r.missions, r.volunteers)),
		news:        v1.NewNewsHandler(service.NewNewsService(r.news, r.catalog, r.people)),
		newsImage:   v1.NewNewsImageHandler(service.NewNewsImageService(r.tx, r.newsImages, r.news)),
		collectionPoint: v1.NewCollectionPointHandler(
			service.NewCollectionPointService(r.collectionPoints, r.catalog, r.people, defaultCity),
		),
		need: v1.NewNeedHandler(service.NewNeedService(r.tx, r.needs, r.collectionPoints, r.catalog)),
		donation: v1.NewDonationHandler(
			service.NewDonationService(r.tx, r.donations, r.needs, r.collectionPoints, r.people, r.catalog),
		),
		donationItem: v1.NewDonationItemHandler(service.NewDonationItemService(r.tx, r.donations, r.catalog)),
		catalog:      v1.NewCatalogHandler(service.NewCatalogService(r.catalog)),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.NewString()
	})))
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(s.limiter.Limit())
}

func (s *Server) MountHandlers(h *handlers) {
	api := s.Router.Group(basePath, h.authenticator.VerifyToken())

	profiles := api.Group("/profiles")
	{
		profiles.GET("", h.profile.HandleListProfiles)
		profiles.POST("", h.profile.HandleCreateProfile)
		profiles.GET("/:id", h.profile.HandleGetProfile)
		profiles.PUT("/:id", h.profile.HandleUpdateProfile)
		profiles.DELETE("/:id", h.profile.HandleDeleteProfile)
	}

	people := api.Group("/people")
	{
		people.GET("", h.person.HandleListPeople)
		people.POST("", h.person.HandleCreatePerson)
		people.GET("/active", h.person.HandleListActivePeople)
		people.GET("/:id", h.person.HandleGetPerson)
		people.PUT("/:id", h.person.HandleUpdatePerson)
		people.DELETE("/:id", h.person.HandleDeletePerson)
		people.PATCH("/:id/activate", h.person.HandleActivatePerson)
		people.PATCH("/:id/deactivate", h.person.HandleDeactivatePerson)
		people.GET("/:id/addresses", h.address.HandleListPersonAddresses)
		people.GET("/:id/addresses/primary", h.address.HandleGetPrimaryAddress)
		people.GET("/:id/donations", h.donation.HandleListPersonDonations)
	}

	addresses := api.Group("/addresses")
	{
		addresses.POST("", h.address.HandleCreateAddress)
		addresses.GET("/:id", h.address.HandleGetAddress)
		addresses.PUT("/:id", h.address.HandleUpdateAddress)
		addresses.DELETE("/:id", h.address.HandleDeleteAddress)
		addresses.PATCH("/:id/primary", h.address.HandleSetPrimaryAddress)
	}

	volunteers := api.Group("/volunteers")
	{
		volunteers.GET("", h.volunteer.HandleListVolunteers)
		volunteers.POST("", h.volunteer.HandleCreateVolunteer)
		volunteers.GET("/approved", h.volunteer.HandleListApprovedVolunteers)
		volunteers.GET("/status/:status", h.volunteer.HandleListVolunteersByStatus)
		volunteers.GET("/:id", h.volunteer.HandleGetVolunteer)
		volunteers.PUT("/:id", h.volunteer.HandleUpdateVolunteer)
		volunteers.DELETE("/:id", h.volunteer.HandleDeleteVolunteer)
		volunteers.PATCH("/:id/approve", h.volunteer.HandleApproveVolunteer)
		volunteers.PATCH("/:id/reject", h.volunteer.HandleRejectVolunteer)
		volunteers.GET("/:id/applications", h.application.HandleListVolunteerApplications)
	}

	missions := api.Group("/missions")
	{
		missions.GET("", h.mission.HandleListMissions)
		missions.POST("", h.mission.HandleCreateMission)
		missions.GET("/available", h.mission.HandleListAvailableMissions)
		missions.GET("/status/:status", h.mission.HandleListMissionsByStatus)
		missions.GET("/category/:id", h.mission.HandleListMissionsByCategory)
		missions.GET("/:id", h.mission.HandleGetMission)
		missions.PUT("/:id", h.mission.HandleUpdateMission)
		missions.DELETE("/:id", h.mission.HandleDeleteMission)
		missions.PATCH("/:id/finish", h.mission.HandleFinishMission)
		missions.PATCH("/:id/cancel", h.mission.HandleCancelMission)
		missions.PATCH("/:id/slots", h.mission.HandleUpdateFilledSlots)
		missions.GET("/:id/applications", h.application.HandleListMissionApplications)
	}

	applications := api.Group("/applications")
	{
		applications.GET("", h.application.HandleListApplications)
		applications.POST("", h.application.HandleCreateApplication)
		applications.GET("/status/:status", h.application.HandleListApplicationsByStatus)
		applications.GET("/:id", h.application.HandleGetApplication)
		applications.PUT("/:id", h.application.HandleUpdateApplication)
		applications.DELETE("/:id", h.application.HandleDeleteApplication)
		applications.PATCH("/:id/approve", h.application.HandleApproveApplication)
		applications.PATCH("/:id/reject", h.application.HandleRejectApplication)
		applications.PATCH("/:id/complete", h.application.HandleCompleteApplication)
	}

	news := api.Group("/news")
	{
		news.GET("", h.news.HandleListNews)
		news.POST("", h.news.HandleCreateNews)
		news.GET("/published", h.news.HandleListPublishedNews)
		news.GET("/highlighted", h.news.HandleListHighlightedNews)
		news.GET("/category/:id", h.news.HandleListNewsByCategory)
		news.GET("/:id", h.news.HandleGetNews)
		news.PUT("/:id", h.news.HandleUpdateNews)
		news.DELETE("/:id", h.news.HandleDeleteNews)
		news.PATCH("/:id/publish", h.news.HandlePublishNews)
		news.PATCH("/:id/highlight", h.news.HandleHighlightNews)
		news.PATCH("/:id/views", h.news.HandleIncrementNewsViews)
		news.GET("/:id/images", h.newsImage.HandleListNewsImages)
		news.GET("/:id/images/primary", h.newsImage.HandleGetPrimaryNewsImage)
		news.POST("/:id/images/reorder", h.newsImage.HandleReorderNewsImages)
	}

	newsImages := api.Group("/news-images")
	{
		newsImages.POST("", h.newsImage.HandleCreateNewsImage)
		newsImages.GET("/:id", h.newsImage.HandleGetNewsImage)
		newsImages.PUT("/:id", h.newsImage.HandleUpdateNewsImage)
		newsImages.DELETE("/:id", h.newsImage.HandleDeleteNewsImage)
		newsImages.PATCH("/:id/primary", h.newsImage.HandleSetPrimaryNewsImage)
	}

	points := api.Group("/collection-points")
	{
		points.GET("", h.collectionPoint.HandleListCollectionPoints)
		points.POST("", h.collectionPoint.HandleCreateCollectionPoint)
		points.GET("/active", h.collectionPoint.HandleListActiveCollectionPoints)
		points.GET("/city/:id", h.collectionPoint.HandleListCollectionPointsByCity)
		points.GET("/:id", h.collectionPoint.HandleGetCollectionPoint)
		points.PUT("/:id", h.collectionPoint.HandleUpdateCollectionPoint)
		points.DELETE("/:id", h.collectionPoint.HandleDeleteCollectionPoint)
		points.PATCH("/:id/activate", h.collectionPoint.HandleActivateCollectionPoint)
		points.PATCH("/:id/deactivate", h.collectionPoint.HandleDeactivateCollectionPoint)
		points.GET("/:id/needs", h.need.HandleListCollectionPointNeeds)
		points.GET("/:id/donations", h.donation.HandleListCollectionPointDonations)
	}

	needs := api.Group("/needs")
	{
		needs.GET("", h.need.HandleListNeeds)
		needs.POST("", h.need.HandleCreateNeed)
		needs.GET("/active", h.need.HandleListActiveNeeds)
		needs.GET("/priority/:priority", h.need.HandleListNeedsByPriority)
		needs.GET("/:id", h.need.HandleGetNeed)
		needs.PUT("/:id", h.need.HandleUpdateNeed)
		needs.DELETE("/:id", h.need.HandleDeleteNeed)
		needs.PATCH("/:id/activate", h.need.HandleActivateNeed)
		needs.PATCH("/:id/deactivate", h.need.HandleDeactivateNeed)
		needs.PATCH("/:id/received", h.need.HandleUpdateReceived)
	}

	donations := api.Group("/donations")
	{
		donations.GET("", h.donation.HandleListDonations)
		donations.POST("", h.donation.HandleCreateDonation)
		donations.GET("/status/:status", h.donation.HandleListDonationsByStatus)
		donations.GET("/:id", h.donation.HandleGetDonation)
		donations.PUT("/:id", h.donation.HandleUpdateDonation)
		donations.DELETE("/:id", h.donation.HandleDeleteDonation)
		donations.PATCH("/:id/deliver", h.donation.HandleDeliverDonation)
		donations.PATCH("/:id/cancel", h.donation.HandleCancelDonation)
		donations.GET("/:id/items", h.donationItem.HandleListDonationItems)
	}

	items := api.Group("/donation-items")
	{
		items.POST("", h.donationItem.HandleCreateDonationItem)
		items.GET("/:id", h.donationItem.HandleGetDonationItem)
		items.PUT("/:id", h.donationItem.HandleUpdateDonationItem)
		items.DELETE("/:id", h.donationItem.HandleDeleteDonationItem)
	}

	api.GET("/item-types", h.catalog.HandleListItemTypes)
	api.GET("/mission-categories", h.catalog.HandleListMissionCategories)
	api.GET("/news-categories", h.catalog.HandleListNewsCategories)
	api.GET("/cities", h.catalog.HandleListCities)

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/status", h.status.HandleStatus)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Relief API"
	docs.SwaggerInfo.Description = "Volunteers, missions, donations and news for disaster relief."
	docs.SwaggerInfo.Version = Version
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.limiter.StartCleanup(ctx, 10*time.Minute)

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}
