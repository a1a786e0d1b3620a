package main

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/infra/mq"
	"github.com/example/storefront/internal/logger"
	"github.com/example/storefront/internal/repository/mysql"
	"github.com/example/storefront/internal/seed"
	"github.com/example/storefront/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "storefront-admin",
		Usage: "database maintenance and order analytics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "./config",
				Usage:   "directory containing config.yaml",
				EnvVars: []string{"STOREFRONT_CONFIG_DIR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "create or update tables",
				Action: func(c *cli.Context) error {
					db, err := open(c)
					if err != nil {
						return err
					}
					return mysql.Migrate(db)
				},
			},
			{
				Name:  "seed",
				Usage: "insert demo users, products and orders",
				Action: func(c *cli.Context) error {
					db, err := open(c)
					if err != nil {
						return err
					}
					res, err := seed.Run(c.Context,
						mysql.NewUserRepository(db),
						mysql.NewProductRepository(db),
						mysql.NewOrderRepository(db))
					if err != nil {
						return err
					}
					return printJSON(res)
				},
			},
			{
				Name:  "large-orders",
				Usage: "list users with an order above 1,000,000",
				Action: func(c *cli.Context) error {
					svc, err := analytics(c, false)
					if err != nil {
						return err
					}
					list, err := svc.UsersWithLargeOrders(c.Context)
					if err != nil {
						return err
					}
					return printJSON(list)
				},
			},
			{
				Name:  "average-orders",
				Usage: "print the average order total of every user",
				Action: func(c *cli.Context) error {
					svc, err := analytics(c, false)
					if err != nil {
						return err
					}
					list, err := svc.AverageOrderPerUser(c.Context)
					if err != nil {
						return err
					}
					return printJSON(list)
				},
			},
			{
				Name:      "user-orders",
				Usage:     "print one user's orders with totals",
				ArgsUsage: "<user-id>",
				Action: func(c *cli.Context) error {
					id, err := strconv.ParseInt(c.Args().First(), 10, 64)
					if err != nil {
						return cli.Exit("user-orders needs a numeric user id", 2)
					}
					svc, err := analytics(c, false)
					if err != nil {
						return err
					}
					summary, err := svc.UserOrders(c.Context, id)
					if err != nil {
						return err
					}
					return printJSON(summary)
				},
			},
			{
				Name:  "promote-orders",
				Usage: "mark orders above 500,000 as completed",
				Action: func(c *cli.Context) error {
					svc, err := analytics(c, true)
					if err != nil {
						return err
					}
					n, err := svc.PromoteCompletedOrders(c.Context)
					if err != nil {
						return err
					}
					return printJSON(map[string]int64{"updatedCount": n})
				},
			},
		},
	}

	err := app.Run(os.Args)
	if conn := mq.Conn(); conn != nil {
		_ = conn.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func open(c *cli.Context) (*gorm.DB, error) {
	db, _, err := load(c)
	return db, err
}

func load(c *cli.Context) (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if _, err := logger.Init(&cfg.Log); err != nil {
		return nil, nil, err
	}
	return mysql.Init(&cfg.MySQL), cfg, nil
}

// orderEvents 配置了 rabbitmq.url 时返回事件发布者，否则返回 nil
var orderEvents = func(cfg *config.RabbitMQConfig) service.EventPublisher {
	conn := mq.Init(cfg)
	if conn == nil {
		return nil
	}
	return mq.NewPublisher(conn, cfg.OrderEventsQueue)
}

// 只读命令不连接 MQ；promote-orders 与 HTTP 接口一样发布订单状态事件
func newAnalytics(db *gorm.DB, cfg *config.Config, withEvents bool) *service.AnalyticsService {
	var publisher service.EventPublisher
	if withEvents {
		publisher = orderEvents(&cfg.RabbitMQ)
	}
	return service.NewAnalyticsService(mysql.NewUserRepository(db), mysql.NewOrderRepository(db), publisher)
}

func analytics(c *cli.Context, withEvents bool) (*service.AnalyticsService, error) {
	db, cfg, err := load(c)
	if err != nil {
		return nil, err
	}
	return newAnalytics(db, cfg, withEvents), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
