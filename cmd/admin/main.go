package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"resumeEditor/internal/config"
	"resumeEditor/internal/database"
	"resumeEditor/internal/layout"
	"resumeEditor/internal/resume"
)

func main() {
	var (
		title   = flag.String("title", "", "新建简历标题（可选，默认 My Resume）")
		sample  = flag.Bool("sample", false, "使用示例内容而不是空白模板")
		from    = flag.String("from", "", "从 JSON 文件导入简历数据（可选）")
		check   = flag.Bool("check", false, "只检查已有简历的布局划分，不新建")
		dbHost  = flag.String("db-host", "", "数据库 Host（可选，默认读 DATABASE_HOST）")
		dbPort  = flag.Int("db-port", 0, "数据库 Port（可选，默认读 DATABASE_PORT）")
		dbName  = flag.String("db-name", "", "数据库名（可选，默认读 POSTGRES_DB）")
		dbUser  = flag.String("db-user", "", "数据库用户（可选，默认读 POSTGRES_USER）")
		dbPass  = flag.String("db-password", "", "数据库密码（可选，默认读 POSTGRES_PASSWORD）")
		sslMode = flag.String("db-sslmode", "", "数据库 SSLMODE（可选，默认读 DATABASE_SSLMODE）")
	)
	flag.Parse()

	dbCfg, err := loadDatabaseConfig(*dbHost, *dbPort, *dbName, *dbUser, *dbPass, *sslMode)
	if err != nil {
		log.Fatalf("load database config: %v", err)
	}

	db, err := database.InitDatabase(dbCfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	repo := database.NewResumeRepository(db)
	ctx := context.Background()

	if *check {
		if broken := checkLayouts(ctx, repo); broken > 0 {
			os.Exit(1)
		}
		return
	}

	data, err := seedData(*from, *sample)
	if err != nil {
		log.Fatalf("prepare resume data: %v", err)
	}
	created, err := repo.Create(ctx, strings.TrimSpace(*title), data)
	if err != nil {
		log.Fatalf("create resume: %v", err)
	}

	fmt.Printf("已创建简历：\n")
	fmt.Printf("ID: %s\n", created.ID)
	fmt.Printf("标题: %s\n", created.Title)
}

func seedData(path string, sample bool) (*resume.Data, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return resume.Decode(raw)
	}
	if sample {
		return resume.Sample(), nil
	}
	return resume.Default(), nil
}

// checkLayouts 逐份校验布局是否恰好覆盖全部板块，返回不合格的数量。
func checkLayouts(ctx context.Context, repo *database.ResumeRepository) int {
	items, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("list resumes: %v", err)
	}

	broken := 0
	for _, item := range items {
		r, err := repo.LoadResume(ctx, item.ID)
		if err != nil {
			fmt.Printf("%s\t%s\tload failed: %v\n", item.ID, item.Title, err)
			broken++
			continue
		}
		if err := layout.Check(r.Data.Metadata.Layout, r.Data.SectionIDs()); err != nil {
			fmt.Printf("%s\t%s\t%v\n", item.ID, item.Title, err)
			broken++
		}
	}
	fmt.Printf("检查完成：%d 份简历，%d 份布局异常\n", len(items), broken)
	return broken
}

func loadDatabaseConfig(host string, port int, name, user, password, sslmode string) (config.DatabaseConfig, error) {
	if strings.TrimSpace(host) == "" {
		host = os.Getenv("DATABASE_HOST")
	}
	if port <= 0 {
		if env := strings.TrimSpace(os.Getenv("DATABASE_PORT")); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return config.DatabaseConfig{}, fmt.Errorf("parse DATABASE_PORT: %w", err)
			}
			port = p
		}
	}
	if strings.TrimSpace(name) == "" {
		name = os.Getenv("POSTGRES_DB")
	}
	if strings.TrimSpace(user) == "" {
		user = os.Getenv("POSTGRES_USER")
	}
	if strings.TrimSpace(password) == "" {
		password = os.Getenv("POSTGRES_PASSWORD")
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = os.Getenv("DATABASE_SSLMODE")
	}

	if strings.TrimSpace(host) == "" {
		host = "localhost"
	}
	if port <= 0 {
		port = 5432
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = "disable"
	}
	if strings.TrimSpace(name) == "" {
		return config.DatabaseConfig{}, errors.New("database name is required (POSTGRES_DB)")
	}
	if strings.TrimSpace(user) == "" {
		return config.DatabaseConfig{}, errors.New("database user is required (POSTGRES_USER)")
	}
	if strings.TrimSpace(password) == "" {
		return config.DatabaseConfig{}, errors.New("database password is required (POSTGRES_PASSWORD)")
	}

	return config.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     name,
		User:     user,
		Password: password,
		SSLMode:  sslmode,
	}, nil
}
