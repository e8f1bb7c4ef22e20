package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asevenm/xhs-anime-ip/internal/app"
	"github.com/asevenm/xhs-anime-ip/internal/config"
	"github.com/asevenm/xhs-anime-ip/internal/database"
	"github.com/asevenm/xhs-anime-ip/internal/scheduler"
	"github.com/asevenm/xhs-anime-ip/internal/types"
	"github.com/asevenm/xhs-anime-ip/internal/utils"
)

const usage = `用法: xhs-anime-ip <命令> [日期]

命令:
  plan       生成当日内容计划
  paint      为内容计划生成图片（默认最新日期，可指定 2006-01-02）
  publish    发布内容（默认最新日期，可指定 2006-01-02）
  run        执行一轮完整流水线（策划→绘图→发布）
  login      打开浏览器窗口完成登录并保存登录态
  history    查看最近的发布记录
  daemon     常驻运行，每日定时执行流水线
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化配置失败: %v\n", err)
		os.Exit(1)
	}
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	a, err := app.New()
	if err != nil {
		utils.Error(fmt.Sprintf("初始化失败: %v", err))
		os.Exit(1)
	}

	ctx := context.Background()
	date := ""
	if len(os.Args) > 2 {
		date = os.Args[2]
	}

	switch os.Args[1] {
	case "plan":
		content, err := a.Plan(ctx)
		exitOnError(err)
		fmt.Printf("✅ 内容计划已生成: %s\n📝 标题: %s\n", content.Date, content.Title)

	case "paint":
		exitOnError(a.Paint(ctx, date))

	case "publish":
		result, err := a.Publish(ctx, date)
		exitOnError(err)
		reportResult(result)

	case "run":
		exitOnError(a.RunOnce(ctx))

	case "login":
		exitOnError(a.Publisher.Login())

	case "history":
		records, err := database.RecentRecords(a.DB, 20)
		exitOnError(err)
		for _, r := range records {
			fmt.Printf("%s  %-20s  %-12s  成功%d/失败%d  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.Date, r.Status, r.Uploaded, r.Failed, r.Diagnostics)
		}

	case "daemon":
		s := scheduler.New(a)
		s.Start()
		waitForSignal()
		s.Stop()

	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}

// reportResult 打印发布结果；需要人工收尾时挂住进程等确认，
// 避免进程退出带走留给人工处理的浏览器窗口
func reportResult(result *types.PublishResult) {
	fmt.Printf("发布结果: %s\n", result.Status)
	if result.Diagnostics != "" {
		fmt.Printf("说明: %s\n", result.Diagnostics)
	}
	for _, u := range result.Uploads {
		mark := "✅"
		if !u.Success {
			mark = "❌"
		}
		fmt.Printf("  %s %s %s\n", mark, u.Path, u.Reason)
	}

	needsManual := result.Status == types.PublishStatusChallengeUnresolved ||
		result.Status == types.PublishStatusSubmissionTimeout
	if needsManual && !config.Config.AutoConfirm {
		fmt.Println("浏览器窗口已保留，请人工完成后按回车退出...")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	if result.Status != types.PublishStatusSuccess && result.Status != types.PublishStatusPartialFailure {
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		utils.Error(err.Error())
		os.Exit(1)
	}
}

func waitForSignal() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
}
