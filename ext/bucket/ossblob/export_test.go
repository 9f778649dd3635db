package ossblob

import "github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"

func NewDriverBucket(client *oss.Client, name string) *bucket {
	return &bucket{client: client, name: name}
}
