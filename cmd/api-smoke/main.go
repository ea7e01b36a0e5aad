package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// 对运行中的前台与后台服务做一遍冒烟测试
func main() {
	baseURL := flag.String("web", "http://localhost:8080", "storefront base url")
	adminURL := flag.String("admin", "http://localhost:8081", "admin base url")
	flag.Parse()

	jar, _ := cookiejar.New(nil)
	c := &client{http: &http.Client{Timeout: 5 * time.Second, Jar: jar}}

	fmt.Println("==========================================")
	fmt.Println("    完整API测试")
	fmt.Println("==========================================")

	// 1. 登录演示账号（会话 cookie 由 jar 保存）
	fmt.Println("\n1. 登录 user@example.com...")
	if _, err := c.do("POST", *baseURL+"/api/auth/login", map[string]string{
		"email": "user@example.com", "password": "password",
	}, ""); err != nil {
		fmt.Printf("   登录失败: %v\n", err)
		return
	}
	fmt.Println("   登录成功")

	// 2. 商品列表
	fmt.Println("\n2. 笔记本按价格升序...")
	resp, err := c.do("GET", *baseURL+"/api/products?category=laptop&sort=price-low", nil, "")
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
		return
	}
	items, _ := resp["data"].(map[string]interface{})["items"].([]interface{})
	fmt.Printf("   共 %d 个商品\n", len(items))
	if len(items) == 0 {
		return
	}
	first, _ := items[0].(map[string]interface{})["id"].(string)

	// 3. 加购并结算
	fmt.Println("\n3. 加入购物车并下单...")
	if _, err := c.do("POST", *baseURL+"/api/cart/items", map[string]interface{}{"product_id": first, "quantity": 1}, ""); err != nil {
		fmt.Printf("   加购失败: %v\n", err)
		return
	}
	receipt, err := c.do("POST", *baseURL+"/api/checkout", map[string]string{
		"name": "Smoke Test", "email": "smoke@example.com", "phone": "+919876543210",
		"address": "1 Test Street", "city": "Pune", "state": "Maharashtra", "pincode": "411001",
		"card_number": "4111111111111111", "expiry": "12/30", "cvv": "123",
	}, "")
	if err != nil {
		fmt.Printf("   下单失败: %v\n", err)
	} else {
		fmt.Printf("   订单号: %v\n", receipt["data"].(map[string]interface{})["order_number"])
	}

	// 4. 保修查询
	fmt.Println("\n4. 保修查询 SN-UNKNOWN...")
	if resp, err := c.do("GET", *baseURL+"/api/warranty/status?serial=SN-UNKNOWN", nil, ""); err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		fmt.Printf("   结果: %v\n", resp["data"])
	}

	// 5. 后台统计
	fmt.Println("\n5. 后台登录并查看统计...")
	login, err := c.do("POST", *adminURL+"/api/login", map[string]string{"email": "admin", "password": "admin"}, "")
	if err != nil {
		fmt.Printf("   后台登录失败: %v\n", err)
	} else {
		token, _ := login["data"].(map[string]interface{})["token"].(string)
		for _, path := range []string{"/api/stats", "/api/monitor"} {
			if resp, err := c.do("GET", *adminURL+path, nil, token); err != nil {
				fmt.Printf("   %s 失败: %v\n", path, err)
			} else {
				fmt.Printf("   %s: %v\n", path, resp["data"])
			}
		}
	}

	// 6. 表单限流
	fmt.Println("\n6. 测试限流功能，发送30个快速请求...")
	limited, rejected := 0, 0
	for i := 0; i < 30; i++ {
		_, err := c.do("POST", *baseURL+"/api/contact", map[string]string{"first_name": "x"}, "")
		switch e := err.(type) {
		case *statusError:
			if e.code == http.StatusTooManyRequests {
				limited++
			} else {
				rejected++
			}
		}
	}
	fmt.Printf("   校验失败: %d, 限流: %d\n", rejected, limited)

	fmt.Println("\n==========================================")
	fmt.Println("测试完成！")
	fmt.Println("==========================================")
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string { return fmt.Sprintf("HTTP %d: %s", e.code, e.body) }

type client struct {
	http *http.Client
}

func (c *client) do(method, url string, body interface{}, token string) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &statusError{code: resp.StatusCode, body: string(bodyBytes)}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("JSON解析失败: %v, 响应: %s", err, string(bodyBytes))
	}
	return result, nil
}
