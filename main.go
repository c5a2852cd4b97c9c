package main

import (
	"log"

	"github.com/worklinehq/workline/config"
	"github.com/worklinehq/workline/db"
	"github.com/worklinehq/workline/server"
	"github.com/worklinehq/workline/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	hub := server.NewHub()

	notificationService := services.NewNotificationService(notificationRepo, conf)
	messageService := services.NewMessageService(messageRepo, authRepo, notificationService, hub, conf)

	s := &server.Server{
		Config:                 conf,
		AuthRepository:         authRepo,
		MessageRepository:      messageRepo,
		NotificationRepository: notificationRepo,
		MessageService:         messageService,
		NotificationService:    notificationService,
		Hub:                    hub,
		DB:                     gormDB,
	}

	s.Start()
}
