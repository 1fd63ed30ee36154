// hashpassword 为 admin.passwordHash 生成bcrypt哈希。
//
//	go run ./cmd/hashpassword 'valar morghulis'
//	echo -n 'valar morghulis' | go run ./cmd/hashpassword
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password, err := readPassword(os.Args[1:], os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hash, err := hashPassword(password, bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法生成哈希: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// readPassword 优先使用命令行参数，否则读取标准输入的第一行
func readPassword(args []string, stdin io.Reader) (string, error) {
	var password string
	if len(args) > 0 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("无法读取密码: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", errors.New("用法: hashpassword <password>")
	}
	return password, nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
