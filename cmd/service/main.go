// @title        Online Shop API
// @version      1.0
// @description  使用者、商品目錄與購物車的後端 API 文件
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-access-token
// @securityDefinitions.basic BasicAuth
package main

import (
	"flag"
	"log"

	_ "online-shop/docs" // 引入 swag 產出的 docs
)

func main() {
	fs := flag.NewFlagSet("service", flag.ContinueOnError)
	down := fs.Bool("migrate-down", false, "roll back every migration and exit")
	if err := fs.Parse(cmdArgs()); err != nil {
		exitFunc(2)
		return
	}

	task := run
	if *down {
		task = rollbackMigrations
	}
	if err := task(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
