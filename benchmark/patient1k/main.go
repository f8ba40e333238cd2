package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var maxPatients int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	patientIDs := make([]uint, maxPatients)
	wg := sync.WaitGroup{}
	for i := 0; i < maxPatients; i++ {
		i := i
		wg.Add(1)
		go func() {
			patientIDs[i] = createPatient(fmt.Sprintf("Benchmark Patient %v", i))
			fmt.Printf("\rcreated patient %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v patients: used time=%v seconds, throughput=%v action/second\n",
		maxPatients, usedTime.Seconds(), float64(maxPatients)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxPatients; i++ {
		i := i
		wg.Add(1)
		go func() {
			insertThreshold(patientIDs[i])
			fmt.Printf("\rinserted threshold for patient %v", patientIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted thresholds for %v patients: used time=%v seconds, throughput=%v action/second\n",
		maxPatients, usedTime.Seconds(), float64(maxPatients)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxPatients; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(patientIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v patients: used time=%v seconds, throughput=%v action/second\n",
		maxPatients, usedTime.Seconds(), float64(maxPatients*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func createPatient(name string) uint {
	payload := map[string]string{"name": name}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/patients", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		panic(fmt.Sprintf("unexpected status creating patient: %v", resp.StatusCode))
	}

	body, _ := io.ReadAll(resp.Body)
	var patient struct {
		ID uint `json:"ID"`
	}
	if err := json.Unmarshal(body, &patient); err != nil {
		panic(err)
	}
	return patient.ID
}

func insertThreshold(patientID uint) {
	maxWarning := rndFloat64(90.0, 110.0, 1)
	maxCritical := rndFloat64(110.0, 140.0, 1)
	payload := map[string]any{
		"patient_id":   patientID,
		"parameter":    "heart_rate",
		"max_warning":  maxWarning,
		"max_critical": maxCritical,
		"enabled":      true,
	}

	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/thresholds", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("unexpected status upserting threshold: %v", resp.StatusCode))
	}
}

func doAction(patientID uint) {
	actions := []func(){
		genUpsertThresholdAction(patientID),
		genGetAlertsAction(patientID),
		genPostMeasurementAction(patientID),
	}
	actionNames := []string{
		"UpsertThreshold",
		"GetAlerts",
		"PostMeasurement",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for patient %v", actionNames[index], patientID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genUpsertThresholdAction(patientID uint) func() {
	return func() {
		insertThreshold(patientID)
	}
}

func genPostMeasurementAction(patientID uint) func() {
	return func() {
		now := time.Now()
		payload := map[string]any{
			"timestamp":  now.Format(time.RFC3339),
			"heart_rate": rndFloat64(40.0, 180.0, 1),
			"spo2":       rndFloat64(85.0, 100.0, 1),
		}

		jsonData, _ := json.Marshal(payload)
		resp, err := http.Post(fmt.Sprintf("http://%s/patients/%v/measurements", httpHostPort, patientID), "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}

func genGetAlertsAction(patientID uint) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/patients/%v/alerts", httpHostPort, patientID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}
