package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/config"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/repository"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/seed"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var teamID int64
	var actorID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入基础数据, 2: 插入随机员工, 3: 插入示例周排班)")
	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.Int64Var(&teamID, "team-id", 0, "员工或示例排班所属的团队 ID")
	flag.Int64Var(&actorID, "actor-id", 1, "示例排班的修改人 ID，默认为初始管理员")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		seed.SeedBaseData(repo)
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}
		if teamID <= 0 {
			slog.Error("请输入合法的团队 ID")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomStaff(cfg.Seed.User.Password, cfg.Email.UserDomain, teamID)
			if err != nil {
				slog.Error("无法生成随机员工", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入员工成功", slog.Int("count", n-cnt))
	case 3:
		if teamID <= 0 {
			slog.Error("请输入合法的团队 ID")
			return
		}
		seed.SeedExampleWeek(repo, teamID, actorID)
	default:
		slog.Error("指定的操作非法")
	}
}
