// Azkaban CLI — инструмент командной строки для работы с Azkaban:
// загрузка проектов, запуск и отмена flows, расписания, удаление проектов.
//
// Использование:
//
//	azkaban [--endpoint URL] [--username U --password P | --session-id ID] [--json] <command> [flags]
//
// Команды:
//
//	login     Получить session.id
//	flow      Запуск, просмотр и отмена executions
//	schedule  Расписания flows
//	project   Создание, загрузка, submit и удаление проектов
//	history   Журнал операций (PostgreSQL)
//	events    События операций (RabbitMQ)
//	config    Текущая конфигурация
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaiso/azkaban-submitter/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := cli.NewRuntime(&cli.Options{})
	rootCmd := cli.NewRootCmd(rt, version)

	err := rootCmd.ExecuteContext(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if cerr := rt.Close(closeCtx); cerr != nil {
		fmt.Fprintln(os.Stderr, "Warning:", cerr)
	}
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
