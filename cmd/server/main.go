// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/renktt/rresume/internal/config"
	"github.com/renktt/rresume/internal/handler"
	"github.com/renktt/rresume/internal/middleware"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/internal/service"
	"github.com/renktt/rresume/pkg/database"
	"github.com/renktt/rresume/pkg/llm"
	"github.com/renktt/rresume/pkg/log"
	"github.com/renktt/rresume/pkg/storage"
	"github.com/renktt/rresume/pkg/token"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化存储后端
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)

	// 4. 初始化 Repository：内容仓储按配置在 MySQL 与 Redis 之间二选一，
	// 会话记忆固定使用 Redis（依赖其 TTL 淘汰能力）。
	var (
		resumeRepo  repository.ResumeRepository
		projectRepo repository.ProjectRepository
		contactRepo repository.ContactRepository
		courseRepo  repository.CourseRepository
	)
	switch cfg.Storage.Driver {
	case "redis":
		resumeRepo = repository.NewKVResumeRepository(database.RDB)
		projectRepo = repository.NewKVProjectRepository(database.RDB)
		contactRepo = repository.NewKVContactRepository(database.RDB)
		courseRepo = repository.NewKVCourseRepository(database.RDB)
		log.Info("内容仓储使用 Redis 后端")
	default:
		database.InitMySQL(cfg.Database.MySQL.DSN)
		if err := database.DB.AutoMigrate(&model.ResumeItem{}, &model.Project{}, &model.ContactMessage{}, &model.Course{}); err != nil {
			log.Fatal("数据库迁移失败", err)
		}
		resumeRepo = repository.NewResumeRepository(database.DB)
		projectRepo = repository.NewProjectRepository(database.DB)
		contactRepo = repository.NewContactRepository(database.DB)
		courseRepo = repository.NewCourseRepository(database.DB)
		log.Info("内容仓储使用 MySQL 后端")
	}
	conversationRepo := repository.NewConversationRepository(
		database.RDB,
		cfg.Chat.MaxTurns,
		time.Duration(cfg.Chat.TurnTTLHours)*time.Hour,
		time.Duration(cfg.Chat.MemoryTTLDays)*24*time.Hour,
	)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	llmClient := llm.NewClient(cfg.LLM)
	retriever := service.NewRetrievalService(resumeRepo, projectRepo, conversationRepo)
	composer := service.NewPromptComposer(model.OwnerProfile)
	fallback := service.NewFallbackGenerator(model.OwnerProfile, resumeRepo, projectRepo)
	chatService := service.NewChatService(llmClient, retriever, composer, fallback, conversationRepo)
	conversationService := service.NewConversationService(conversationRepo)
	resumeService := service.NewResumeService(resumeRepo)
	projectService := service.NewProjectService(projectRepo)
	contactService := service.NewContactService(contactRepo)
	lmsService := service.NewLMSService(courseRepo)
	authService := service.NewAuthService(jwtManager, cfg.Admin.Username, cfg.Admin.PasswordHash)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 7. 注册路由
	api := r.Group("/api")
	{
		// Auth 路由组
		auth := api.Group("/auth")
		{
			auth.POST("/login", handler.NewAuthHandler(authService).Login)
		}

		// Chat 路由组（对话与会话记忆，公开访问）
		chatHandler := handler.NewChatHandler(chatService)
		api.POST("/chat", chatHandler.Chat)
		api.POST("/voice", chatHandler.Voice)
		api.GET("/chat/ws", chatHandler.HandleWS)

		memoryHandler := handler.NewMemoryHandler(conversationService)
		memory := api.Group("/memory")
		{
			memory.GET("", memoryHandler.GetMemory)
			memory.POST("", memoryHandler.AppendMemory)
			memory.DELETE("", memoryHandler.ClearMemory)
		}

		// Resume 路由组：读公开，写需要管理员认证
		resumeHandler := handler.NewResumeHandler(resumeService)
		resume := api.Group("/resume")
		{
			resume.GET("", resumeHandler.List)

			authed := resume.Group("")
			authed.Use(middleware.AdminAuth(jwtManager))
			{
				authed.POST("", resumeHandler.Create)
				authed.PUT("/:id", resumeHandler.Update)
				authed.DELETE("/:id", resumeHandler.Delete)
			}
		}

		// Projects 路由组：读公开，写需要管理员认证
		projectHandler := handler.NewProjectHandler(projectService)
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.GET("/:id/image", projectHandler.ImageLink)

			authed := projects.Group("")
			authed.Use(middleware.AdminAuth(jwtManager))
			{
				authed.POST("", projectHandler.Create)
				authed.PUT("/:id", projectHandler.Update)
				authed.DELETE("/:id", projectHandler.Delete)
				authed.POST("/:id/image", projectHandler.UploadImage)
			}
		}

		// Contact 路由组：提交公开，查阅需要管理员认证
		contactHandler := handler.NewContactHandler(contactService)
		contact := api.Group("/contact")
		{
			contact.POST("", contactHandler.Submit)
			contact.GET("", middleware.AdminAuth(jwtManager), contactHandler.List)
		}

		// LMS 路由组（学习板块）
		lmsHandler := handler.NewLMSHandler(lmsService)
		lms := api.Group("/lms")
		{
			lms.GET("/courses", lmsHandler.ListCourses)
			lms.POST("/courses", middleware.AdminAuth(jwtManager), lmsHandler.CreateCourse)
			lms.POST("/progress", lmsHandler.UpdateProgress)
			lms.POST("/complete", lmsHandler.CompleteCourse)
		}
	}

	// 8. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已退出")
}
