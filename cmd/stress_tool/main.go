package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"studyshare/internal/pkg/config"
	"studyshare/pkg/utils"
)

// Config
const (
	BaseURL    = "http://localhost:8080"
	TotalUsers = 2000 // 模拟 2000 个用户并发点赞同一篇文档
)

var httpClient *http.Client

func init() {
	// 优化 HTTP Client 配置
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

func main() {
	// 签发压测用 token 需要和服务端一致的 JWT 密钥
	config.LoadConfig()

	if len(os.Args) < 2 {
		fmt.Println("Usage: stress_tool <document-id>")
		os.Exit(1)
	}
	documentID := os.Args[1]

	before := fetchLikeCount(documentID)
	fmt.Printf("开始压测：%d 个用户并发点赞文档 %s（当前 like_count=%d）...\n", TotalUsers, documentID, before)
	time.Sleep(1 * time.Second)

	var wg sync.WaitGroup
	successCount := 0
	failCount := 0
	var mu sync.Mutex

	start := time.Now()

	for i := 1; i <= TotalUsers; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			success := likeDocument(userID, documentID)
			mu.Lock()
			if success {
				successCount++
			} else {
				failCount++
			}
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)
	qps := float64(TotalUsers) / duration.Seconds()

	after := fetchLikeCount(documentID)

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", TotalUsers)
	fmt.Printf("QPS: %.2f\n", qps)
	fmt.Printf("点赞成功: %d，失败: %d\n", successCount, failCount)
	fmt.Printf("like_count: %d -> %d（预期增量: %d）\n", before, after, successCount)
	if after-before == int64(successCount) {
		fmt.Println("计数一致")
	} else {
		fmt.Println("计数不一致，请检查计数器事务")
	}
	fmt.Println("--------------------------------------------------")
}

// likeDocument 以独立用户身份同步资料并点赞
func likeDocument(userID int, documentID string) bool {
	subject := fmt.Sprintf("stress|user-%d", userID)
	token, _, err := utils.GenerateToken(subject)
	if err != nil {
		return false
	}

	// 先同步用户，保证点赞时身份可解析
	syncBody, _ := json.Marshal(map[string]string{
		"name":  fmt.Sprintf("Stress User %d", userID),
		"email": fmt.Sprintf("stress-%d@example.com", userID),
	})
	if !doPost("/auth/sync", token, syncBody) {
		return false
	}

	return doPost("/documents/"+documentID+"/like", token, nil)
}

func doPost(path, token string, body []byte) bool {
	req, err := http.NewRequest(http.MethodPost, BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}
	if resp.StatusCode != 200 {
		return false
	}

	// 检查业务状态码
	var result struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return false
	}
	return result.Code == 0
}

// fetchLikeCount 读取文档当前点赞数
func fetchLikeCount(documentID string) int64 {
	resp, err := httpClient.Get(BaseURL + "/documents/" + documentID)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	var envelope struct {
		Data struct {
			LikeCount int64 `json:"likeCount"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0
	}
	return envelope.Data.LikeCount
}
