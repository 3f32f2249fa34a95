package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/controller/callbacks"
	"github.com/Freeeeeet/barber_booking/internal/controller/handlers"
	"github.com/Freeeeeet/barber_booking/internal/controller/state"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	slotService *service.SlotService,
	bookingService *service.BookingService,
	queryService *service.QueryService,
	shopService *service.ShopService,
	logger *zap.Logger,
) *BotController {
	// Незавершённые выборы слота живут в памяти процесса
	stateManager := state.NewManager(state.DefaultDraftTTL)

	cmdHandlers := handlers.NewHandlers(
		slotService,
		bookingService,
		queryService,
		shopService,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		slotService,
		bookingService,
		queryService,
		shopService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/shops", bot.MatchTypeExact, c.handlers.HandleShops)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/slots", bot.MatchTypePrefix, c.handlers.HandleSlots)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.HandleCancel)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "shops", Description: "💈 Список барбершопов"},
		{Command: "slots", Description: "🕐 Свободное время барбершопа"},
		{Command: "week", Description: "🗓 Занятость на неделю"},
		{Command: "mybookings", Description: "📅 Мои записи"},
		{Command: "cancel", Description: "❌ Отменить запись"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	go c.purgeDrafts(ctx)
	c.bot.Start(ctx)
	c.logger.Info("Bot stopped")
}

// purgeDrafts периодически удаляет брошенные выборы слота
func (c *BotController) purgeDrafts(ctx context.Context) {
	ticker := time.NewTicker(state.DefaultDraftTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := c.stateManager.Purge(); removed > 0 {
				c.logger.Debug("Expired slot choices purged", zap.Int("count", removed))
			}
		case <-ctx.Done():
			return
		}
	}
}
